package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projjWalroy/Bookify/pkg/events"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/domain"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/inventory"
	"github.com/projjWalroy/Bookify/services/booking-service/internal/repository"
)

type fakeCustomers struct {
	byID map[string]*domain.Customer
}

func (f *fakeCustomers) ByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomers) Create(_ context.Context, c *domain.Customer) error {
	f.byID[c.ID] = c
	return nil
}

type fakeInventory struct {
	snap *inventory.Snapshot
	err  error
}

func (f *fakeInventory) Event(context.Context, string) (*inventory.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type recordingPublisher struct {
	published []any
	fail      error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, _ string, v any) error {
	if p.fail != nil {
		return p.fail
	}
	p.published = append(p.published, v)
	return nil
}

func newFixture(capacity, priceCents int64) (*BookingSvc, *recordingPublisher) {
	customers := &fakeCustomers{byID: map[string]*domain.Customer{
		"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com"},
	}}
	inv := &fakeInventory{snap: &inventory.Snapshot{EventID: "e1", LeftCapacity: capacity, TicketPriceCents: priceCents}}
	pub := &recordingPublisher{}
	return NewBookingSvc(customers, inv, pub), pub
}

func TestCreatePublishesExactlyOneEvent(t *testing.T) {
	svc, pub := newFixture(5, 1000)

	b, err := svc.Create(context.Background(), "u1", "e1", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, b.BookingID)
	assert.Equal(t, int64(3000), b.TotalPriceCents, "total is snapshot price times count")

	require.Len(t, pub.published, 1)
	env := pub.published[0].(events.Envelope)
	assert.Equal(t, events.RKBookingRequested, env.Event)
	evt, err := events.Decode[events.BookingRequested](env)
	require.NoError(t, err)
	assert.Equal(t, b.BookingID, evt.BookingID)
	assert.Equal(t, int64(3000), evt.TotalPriceCents)
}

// The price on the event is fixed at intake time; later price changes must
// not leak into an already-published booking.
func TestCreateSnapshotsPriceAtIntake(t *testing.T) {
	customers := &fakeCustomers{byID: map[string]*domain.Customer{"u1": {ID: "u1"}}}
	inv := &fakeInventory{snap: &inventory.Snapshot{EventID: "e1", LeftCapacity: 10, TicketPriceCents: 1000}}
	pub := &recordingPublisher{}
	svc := NewBookingSvc(customers, inv, pub)

	b, err := svc.Create(context.Background(), "u1", "e1", 2)
	require.NoError(t, err)

	inv.snap.TicketPriceCents = 9999 // price change after publish

	evt, err := events.Decode[events.BookingRequested](pub.published[0].(events.Envelope))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), evt.TotalPriceCents)
	assert.Equal(t, int64(2000), b.TotalPriceCents)
}

func TestCreateErrorsPublishNothing(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		count   int32
		invErr  error
		wantErr error
	}{
		{name: "unknown customer", userID: "ghost", count: 1, wantErr: ErrCustomerNotFound},
		{name: "non-positive count", userID: "u1", count: 0, wantErr: ErrInvalidTicketCount},
		{name: "unknown event", userID: "u1", count: 1, invErr: inventory.ErrEventNotFound, wantErr: ErrEventNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, pub := newFixture(5, 1000)
			if tt.invErr != nil {
				svc.inv.(*fakeInventory).err = tt.invErr
			}
			_, err := svc.Create(context.Background(), tt.userID, "e1", tt.count)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, pub.published, "failed intake must not reach the log")
		})
	}
}

func TestCreateRejectsInsufficientSnapshot(t *testing.T) {
	svc, pub := newFixture(2, 1000)

	_, err := svc.Create(context.Background(), "u1", "e1", 3)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Empty(t, pub.published)
}

func TestCreatePublishFailureSurfacesToCaller(t *testing.T) {
	svc, pub := newFixture(5, 1000)
	pub.fail = errors.New("broker down")

	_, err := svc.Create(context.Background(), "u1", "e1", 1)
	assert.ErrorIs(t, err, ErrPublishFailed)
	assert.Empty(t, pub.published)
}
