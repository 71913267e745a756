package worker

import (
	"context"
	"fmt"
	"log"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/projjWalroy/Bookify/pkg/events"
	"github.com/projjWalroy/Bookify/pkg/kafka"
	"github.com/projjWalroy/Bookify/services/notification-service/internal/notifier"
)

// Consumer turns booking outcome events into user notifications. Purely a
// downstream observer: it never feeds back into the saga, so its failure
// policy is simply skip-and-log.
type Consumer struct {
	cons     *kafka.Consumer
	notifier notifier.Notifier
}

func NewConsumer(cons *kafka.Consumer, n notifier.Notifier) *Consumer {
	return &Consumer{cons: cons, notifier: n}
}

func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.cons.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := c.handle(m); err != nil {
			log.Printf("[notify] handle error offset=%d: %v", m.Offset, err)
		}
		if err := c.cons.Commit(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) handle(m kafkago.Message) error {
	env, err := events.ParseEnvelope(m.Value)
	if err != nil {
		return err
	}
	switch env.Event {
	case events.RKBookingConfirmed:
		ev, err := events.Decode[events.BookingConfirmed](env)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking Confirmed",
			fmt.Sprintf("Booking %s confirmed: %d ticket(s) for event %s (order %s).",
				ev.BookingID, ev.TicketCount, ev.EventID, ev.OrderID))

	case events.RKBookingFailed:
		ev, err := events.Decode[events.BookingFailed](env)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking Failed",
			fmt.Sprintf("Booking %s for event %s failed: %s.", ev.BookingID, ev.EventID, ev.Reason))

	default:
		log.Printf("[notify] skip unknown event kind %q", env.Event)
	}
	return nil
}
