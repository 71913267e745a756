package service

import (
	"context"
	"errors"

	"github.com/projjWalroy/Bookify/services/inventory-service/internal/domain"
	"github.com/projjWalroy/Bookify/services/inventory-service/internal/repository"
)

// Store is the persistence contract the service needs. The atomic
// check-and-decrement lives behind CommitCapacity; everything else is reads.
type Store interface {
	EventByID(ctx context.Context, id string) (*domain.EventInventory, error)
	VenueByID(ctx context.Context, id string) (*domain.Venue, error)
	ListEvents(ctx context.Context, page, size int32) ([]domain.EventInventory, error)
	CommitCapacity(ctx context.Context, eventID, bookingID string, ticketCount int64) error
	CreateEvent(ctx context.Context, ev *domain.EventInventory) error
	CreateVenue(ctx context.Context, v *domain.Venue) error
}

var (
	ErrInvalidTicketCount = errors.New("ticket count must be positive")
	ErrMissingBookingID   = errors.New("booking id required")
)

type InventorySvc struct {
	store Store
}

func NewInventorySvc(s Store) *InventorySvc {
	return &InventorySvc{store: s}
}

// EventView is the peek used by booking intake: a non-authoritative snapshot
// of remaining capacity and price, venue attached for catalog UIs.
type EventView struct {
	Event *domain.EventInventory
	Venue *domain.Venue
}

func (s *InventorySvc) Event(ctx context.Context, eventID string) (*EventView, error) {
	ev, err := s.store.EventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := &EventView{Event: ev}
	if ev.VenueID != "" {
		v, err := s.store.VenueByID(ctx, ev.VenueID)
		if err != nil && !errors.Is(err, repository.ErrVenueNotFound) {
			return nil, err
		}
		out.Venue = v
	}
	return out, nil
}

func (s *InventorySvc) Venue(ctx context.Context, venueID string) (*domain.Venue, error) {
	return s.store.VenueByID(ctx, venueID)
}

func (s *InventorySvc) ListEvents(ctx context.Context, page, size int32) ([]domain.EventInventory, error) {
	return s.store.ListEvents(ctx, page, size)
}

// Commit decrements capacity for a booking, once per booking id no matter
// how often it is retried. ErrSoldOut and ErrEventNotFound are definitive
// rejections, expected under contention; anything else is a store failure
// the caller should treat as transient.
func (s *InventorySvc) Commit(ctx context.Context, eventID, bookingID string, ticketCount int64) error {
	if ticketCount <= 0 {
		return ErrInvalidTicketCount
	}
	if bookingID == "" {
		return ErrMissingBookingID
	}
	return s.store.CommitCapacity(ctx, eventID, bookingID, ticketCount)
}

func (s *InventorySvc) CreateEvent(ctx context.Context, ev domain.EventInventory) (*domain.EventInventory, error) {
	if ev.LeftCapacity < 0 || ev.TicketPriceCents < 0 {
		return nil, errors.New("capacity and price must be non-negative")
	}
	if err := s.store.CreateEvent(ctx, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (s *InventorySvc) CreateVenue(ctx context.Context, v domain.Venue) (*domain.Venue, error) {
	if err := s.store.CreateVenue(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
