package consumer

import (
	"context"
	"log"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/projjWalroy/Bookify/pkg/events"
	"github.com/projjWalroy/Bookify/pkg/kafka"
	"github.com/projjWalroy/Bookify/services/order-service/internal/service"
)

// BookingConsumer reads booking.requested events and feeds them to the order
// service. Offsets are committed only after the order reached durable state,
// so a crash mid-flight replays the message instead of dropping the booking.
type BookingConsumer struct {
	svc        *service.OrderSvc
	cons       *kafka.Consumer
	retryDelay time.Duration
}

func NewBookingConsumer(svc *service.OrderSvc, cons *kafka.Consumer) *BookingConsumer {
	return &BookingConsumer{svc: svc, cons: cons, retryDelay: 2 * time.Second}
}

func (bc *BookingConsumer) Run(ctx context.Context) error {
	for {
		m, err := bc.cons.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		// Transient failures retry the same message in place. That keeps
		// per-partition order and is equivalent to the log redelivering.
		for {
			err := bc.handle(ctx, m)
			if err == nil {
				break
			}
			log.Printf("[order-consumer] handle error offset=%d err=%v, retrying", m.Offset, err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(bc.retryDelay):
			}
		}
		if err := bc.cons.Commit(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// handle returns nil when the message is fully dealt with (including the
// malformed case, which is skipped and reported rather than retried — a
// poison pill must not stall the partition).
func (bc *BookingConsumer) handle(ctx context.Context, m kafkago.Message) error {
	env, err := events.ParseEnvelope(m.Value)
	if err != nil {
		log.Printf("[order-consumer] malformed message offset=%d: %v, skipping", m.Offset, err)
		return nil
	}
	switch env.Event {
	case events.RKBookingRequested:
		evt, err := events.Decode[events.BookingRequested](env)
		if err != nil {
			log.Printf("[order-consumer] malformed %s offset=%d: %v, skipping", env.Event, m.Offset, err)
			return nil
		}
		if evt.BookingID == "" || evt.EventID == "" {
			log.Printf("[order-consumer] %s missing ids offset=%d, skipping", env.Event, m.Offset)
			return nil
		}
		// A non-positive count can never commit; retrying it would park the
		// partition, so it is malformed, not transient.
		if evt.TicketCount <= 0 {
			log.Printf("[order-consumer] %s booking=%s non-positive ticket_count=%d offset=%d, skipping",
				env.Event, evt.BookingID, evt.TicketCount, m.Offset)
			return nil
		}
		return bc.svc.ProcessBookingRequested(ctx, evt)
	default:
		// unknown kinds on the topic are fine, newer producers may add them
		return nil
	}
}
