package domain

import "time"

// Customer is referenced by the saga, never mutated by it.
type Customer struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"index"`
	CreatedAt time.Time
}
