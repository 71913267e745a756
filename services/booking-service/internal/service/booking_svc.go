package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/projjWalroy/Bookify/pkg/events"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/domain"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/inventory"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/repository"
)

var (
	ErrCustomerNotFound      = repository.ErrCustomerNotFound
	ErrEventNotFound         = inventory.ErrEventNotFound
	ErrInvalidTicketCount    = errors.New("ticket count must be positive")
	ErrInsufficientInventory = errors.New("insufficient_inventory")
	ErrPublishFailed         = errors.New("publish_failed")
)

// Customers is the read surface the coordinator needs.
type Customers interface {
	ByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
}

// Inventory is the advisory peek at remaining capacity and price.
type Inventory interface {
	Event(ctx context.Context, eventID string) (*inventory.Snapshot, error)
}

// Publisher appends one envelope to the booking log.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Booking is the intake result returned to the caller.
type Booking struct {
	BookingID       string `json:"booking_id"`
	UserID          string `json:"user_id"`
	EventID         string `json:"event_id"`
	TicketCount     int32  `json:"ticket_count"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

// BookingSvc validates a booking request against a snapshot of inventory and,
// if it looks serviceable, appends exactly one booking.requested event. It
// never mutates inventory itself; the order service's commit is the only
// place capacity actually changes.
type BookingSvc struct {
	customers Customers
	inv       Inventory
	pub       Publisher
}

func NewBookingSvc(c Customers, inv Inventory, pub Publisher) *BookingSvc {
	return &BookingSvc{customers: c, inv: inv, pub: pub}
}

func (s *BookingSvc) Create(ctx context.Context, userID, eventID string, ticketCount int32) (*Booking, error) {
	if ticketCount <= 0 {
		return nil, ErrInvalidTicketCount
	}

	customer, err := s.customers.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap, err := s.inv.Event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// Advisory only: rejects obviously doomed requests cheaply. A stale
	// snapshot passing here cannot oversell, the commit downstream re-checks.
	if snap.LeftCapacity < int64(ticketCount) {
		return nil, ErrInsufficientInventory
	}

	b := &Booking{
		BookingID:       uuid.NewString(),
		UserID:          customer.ID,
		EventID:         eventID,
		TicketCount:     ticketCount,
		TotalPriceCents: snap.TicketPriceCents * int64(ticketCount),
	}

	env, err := events.NewEnvelope(events.RKBookingRequested, events.BookingRequested{
		BookingID:       b.BookingID,
		UserID:          b.UserID,
		EventID:         b.EventID,
		TicketCount:     b.TicketCount,
		TotalPriceCents: b.TotalPriceCents,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	// Key by event id so all bookings for one event share a partition.
	if err := s.pub.PublishJSON(ctx, b.EventID, env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	log.Printf("[booking] requested booking=%s event=%s tickets=%d total=%d",
		b.BookingID, b.EventID, b.TicketCount, b.TotalPriceCents)
	return b, nil
}

func (s *BookingSvc) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	c := &domain.Customer{Name: name, Email: email}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *BookingSvc) Customer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.ByID(ctx, id)
}
