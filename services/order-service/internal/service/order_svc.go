package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/projjWalroy/Bookify/pkg/events"
	"github.com/projjWalroy/Bookify/services/order-service/internal/domain"
	"github.com/projjWalroy/Bookify/services/order-service/internal/inventory"
)

// Orders is the persistence contract: an idempotent insert keyed on the
// booking id, and a terminal-guarded status update.
type Orders interface {
	CreateIfAbsent(ctx context.Context, o *domain.Order) (*domain.Order, bool, error)
	SetStatus(ctx context.Context, bookingID, status, reason string) error
	ByBookingID(ctx context.Context, bookingID string) (*domain.Order, error)
	ByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, page, size int32, customerID, eventID string) ([]domain.Order, int64, error)
}

// Committer is the inventory store's atomic check-and-decrement, idempotent
// per booking id.
type Committer interface {
	Commit(ctx context.Context, eventID, bookingID string, ticketCount int64) error
}

// Publisher emits outcome events for notification consumers.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// OrderSvc drives each booking through PENDING -> CONFIRMED | FAILED.
type OrderSvc struct {
	orders Orders
	inv    Committer
	pub    Publisher
}

func NewOrderSvc(orders Orders, inv Committer, pub Publisher) *OrderSvc {
	return &OrderSvc{orders: orders, inv: inv, pub: pub}
}

// ProcessBookingRequested handles one delivery of a booking.requested event.
// A nil return means the booking reached a terminal state (or was a
// duplicate of one); a non-nil return means a transient failure and the
// caller must NOT commit the offset, so the log redelivers.
//
// Duplicate handling: an existing terminal order makes the delivery a no-op.
// An existing PENDING order means an earlier attempt crashed or hit a
// transient error somewhere between the insert and the status write, so the
// commit step resumes rather than being skipped — otherwise the booking
// would be stranded PENDING forever. Re-running the commit is safe: the
// inventory store keys the decrement to the booking id and applies it at
// most once.
func (s *OrderSvc) ProcessBookingRequested(ctx context.Context, evt events.BookingRequested) error {
	o := &domain.Order{
		ID:              uuid.NewString(),
		BookingID:       evt.BookingID,
		CustomerID:      evt.UserID,
		EventID:         evt.EventID,
		TicketCount:     evt.TicketCount,
		TotalPriceCents: evt.TotalPriceCents,
		Status:          domain.StatusPending,
	}
	stored, created, err := s.orders.CreateIfAbsent(ctx, o)
	if err != nil {
		return err // transient: storage unavailable
	}
	if !created {
		if stored.Terminal() {
			log.Printf("[order] duplicate delivery booking=%s status=%s, skipping", evt.BookingID, stored.Status)
			return nil
		}
		o = stored
	}

	err = s.inv.Commit(ctx, evt.EventID, evt.BookingID, int64(evt.TicketCount))
	switch {
	case err == nil:
		if err := s.orders.SetStatus(ctx, evt.BookingID, domain.StatusConfirmed, ""); err != nil {
			return err
		}
		log.Printf("[order] confirmed booking=%s order=%s event=%s tickets=%d",
			evt.BookingID, o.ID, evt.EventID, evt.TicketCount)
		s.publishOutcome(ctx, events.RKBookingConfirmed, evt.EventID, events.BookingConfirmed{
			BookingID: evt.BookingID, OrderID: o.ID, EventID: evt.EventID, TicketCount: evt.TicketCount,
		})
		return nil

	case errors.Is(err, inventory.ErrSoldOut), errors.Is(err, inventory.ErrEventNotFound):
		reason := events.ReasonSoldOut
		if errors.Is(err, inventory.ErrEventNotFound) {
			reason = events.ReasonEventNotFound
		}
		if err := s.orders.SetStatus(ctx, evt.BookingID, domain.StatusFailed, reason); err != nil {
			return err
		}
		log.Printf("[order] failed booking=%s reason=%s", evt.BookingID, reason)
		s.publishOutcome(ctx, events.RKBookingFailed, evt.EventID, events.BookingFailed{
			BookingID: evt.BookingID, EventID: evt.EventID, Reason: reason,
		})
		return nil

	default:
		// transient: order stays PENDING, redelivery retries the commit
		return err
	}
}

// publishOutcome is best-effort: outcome events feed notifications, not saga
// correctness, so a publish failure is logged and swallowed.
func (s *OrderSvc) publishOutcome(ctx context.Context, kind, key string, data any) {
	if s.pub == nil {
		return
	}
	env, err := events.NewEnvelope(kind, data)
	if err != nil {
		log.Printf("[order] encode %s: %v", kind, err)
		return
	}
	if err := s.pub.PublishJSON(ctx, key, env); err != nil {
		log.Printf("[order] publish %s: %v", kind, err)
	}
}

func (s *OrderSvc) ByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.ByID(ctx, id)
}

func (s *OrderSvc) ByBookingID(ctx context.Context, bookingID string) (*domain.Order, error) {
	return s.orders.ByBookingID(ctx, bookingID)
}

func (s *OrderSvc) List(ctx context.Context, page, size int32, customerID, eventID string) ([]domain.Order, int64, error) {
	return s.orders.List(ctx, page, size, customerID, eventID)
}
