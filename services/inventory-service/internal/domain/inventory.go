package domain

import "time"

// EventInventory is the authoritative capacity row for one event. LeftCapacity
// never goes below zero: the only mutation is the repository's guarded
// decrement.
type EventInventory struct {
	ID               string `gorm:"primaryKey"`
	Name             string
	VenueID          string `gorm:"index"`
	LeftCapacity     int64
	TicketPriceCents int64 // price per ticket, minor units
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Venue struct {
	ID            string `gorm:"primaryKey"`
	Name          string
	TotalCapacity int64
}

// CapacityCommit records a booking whose decrement has been applied. Written
// in the same transaction as the decrement, it makes the commit idempotent
// per booking: a redelivered commit for a known booking id is a no-op.
type CapacityCommit struct {
	BookingID   string `gorm:"primaryKey"`
	EventID     string `gorm:"index"`
	TicketCount int64
	CommittedAt time.Time
}
