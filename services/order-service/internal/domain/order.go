package domain

import "time"

const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusFailed    = "FAILED"
)

// Order is the durable record of one booking's fulfillment. BookingID is
// unique: inserting a duplicate is how the worker detects redelivery.
// CONFIRMED and FAILED are terminal.
type Order struct {
	ID              string `gorm:"primaryKey"`
	BookingID       string `gorm:"uniqueIndex"`
	CustomerID      string `gorm:"index"`
	EventID         string `gorm:"index"`
	TicketCount     int32
	TotalPriceCents int64
	Status          string `gorm:"index"`
	FailureReason   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *Order) Terminal() bool {
	return o.Status == StatusConfirmed || o.Status == StatusFailed
}
