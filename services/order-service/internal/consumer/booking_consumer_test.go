package consumer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projjWalroy/Bookify/pkg/events"
	"github.com/projjWalroy/Bookify/services/order-service/internal/domain"
	"github.com/projjWalroy/Bookify/services/order-service/internal/repository"
	"github.com/projjWalroy/Bookify/services/order-service/internal/service"
)

type stubOrders struct {
	mu      sync.Mutex
	created []domain.Order
}

func (s *stubOrders) CreateIfAbsent(_ context.Context, o *domain.Order) (*domain.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, *o)
	return o, true, nil
}

func (s *stubOrders) SetStatus(context.Context, string, string, string) error { return nil }

func (s *stubOrders) ByBookingID(context.Context, string) (*domain.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (s *stubOrders) ByID(context.Context, string) (*domain.Order, error) {
	return nil, repository.ErrOrderNotFound
}

func (s *stubOrders) List(context.Context, int32, int32, string, string) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

type stubCommitter struct{ attempts int }

func (c *stubCommitter) Commit(context.Context, string, string, int64) error {
	c.attempts++
	return nil
}

func newTestConsumer() (*BookingConsumer, *stubOrders, *stubCommitter) {
	orders := &stubOrders{}
	inv := &stubCommitter{}
	svc := service.NewOrderSvc(orders, inv, nil)
	return NewBookingConsumer(svc, nil), orders, inv
}

func msg(v any) kafkago.Message {
	b, _ := json.Marshal(v)
	return kafkago.Message{Value: b}
}

func TestHandleDispatchesBookingRequested(t *testing.T) {
	bc, orders, inv := newTestConsumer()

	env, err := events.NewEnvelope(events.RKBookingRequested, events.BookingRequested{
		BookingID: "b1", UserID: "u1", EventID: "e1", TicketCount: 2, TotalPriceCents: 2000,
	})
	require.NoError(t, err)

	require.NoError(t, bc.handle(context.Background(), msg(env)))
	require.Len(t, orders.created, 1)
	assert.Equal(t, "b1", orders.created[0].BookingID)
	assert.Equal(t, domain.StatusPending, orders.created[0].Status)
	assert.Equal(t, 1, inv.attempts)
}

// Malformed messages are skipped and reported, never retried: returning an
// error here would park the partition behind a poison pill.
func TestHandleSkipsMalformed(t *testing.T) {
	bc, orders, _ := newTestConsumer()

	assert.NoError(t, bc.handle(context.Background(), kafkago.Message{Value: []byte("{{{")}))

	// envelope decodes but the payload does not match the schema
	assert.NoError(t, bc.handle(context.Background(), kafkago.Message{
		Value: []byte(`{"event":"booking.requested","version":1,"data":"not an object"}`),
	}))

	// well-formed but missing the idempotency key
	env, _ := events.NewEnvelope(events.RKBookingRequested, events.BookingRequested{EventID: "e1", TicketCount: 1})
	assert.NoError(t, bc.handle(context.Background(), msg(env)))

	assert.Empty(t, orders.created)
}

// A ticket_count that can never commit is a poison pill, not a transient
// failure: handle must skip it on every delivery instead of retrying it.
func TestHandleSkipsNonPositiveTicketCount(t *testing.T) {
	bc, orders, inv := newTestConsumer()

	for _, count := range []int32{0, -2} {
		env, err := events.NewEnvelope(events.RKBookingRequested, events.BookingRequested{
			BookingID: "b1", UserID: "u1", EventID: "e1", TicketCount: count,
		})
		require.NoError(t, err)

		// same outcome on redelivery: nil means the offset gets committed
		assert.NoError(t, bc.handle(context.Background(), msg(env)))
		assert.NoError(t, bc.handle(context.Background(), msg(env)))
	}

	assert.Empty(t, orders.created)
	assert.Zero(t, inv.attempts)
}

func TestHandleIgnoresUnknownKinds(t *testing.T) {
	bc, orders, _ := newTestConsumer()

	env, _ := events.NewEnvelope("booking.refunded", map[string]string{"booking_id": "b1"})
	assert.NoError(t, bc.handle(context.Background(), msg(env)))
	assert.Empty(t, orders.created)
}
