// Package events is the wire contract between the booking saga services.
// Every message on the log is an Envelope; consumers dispatch on Event and
// decode Data into the matching payload. Unknown fields in a payload are
// ignored, so producers may add fields without breaking older consumers.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	RKBookingRequested = "booking.requested"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingFailed    = "booking.failed"
)

// Failure reasons carried by BookingFailed.
const (
	ReasonSoldOut       = "SoldOut"
	ReasonEventNotFound = "EventNotFound"
)

type Envelope struct {
	Event      string          `json:"event"`
	Version    int             `json:"version"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// BookingRequested is published by the booking service after the advisory
// inventory check passes. BookingID is the idempotency key for the whole
// saga; TotalPriceCents is fixed from the price snapshot taken at intake.
type BookingRequested struct {
	BookingID       string `json:"booking_id"`
	UserID          string `json:"user_id"`
	EventID         string `json:"event_id"`
	TicketCount     int32  `json:"ticket_count"`
	TotalPriceCents int64  `json:"total_price_cents"`
}

type BookingConfirmed struct {
	BookingID   string `json:"booking_id"`
	OrderID     string `json:"order_id"`
	EventID     string `json:"event_id"`
	TicketCount int32  `json:"ticket_count"`
}

type BookingFailed struct {
	BookingID string `json:"booking_id"`
	EventID   string `json:"event_id"`
	Reason    string `json:"reason"`
}

// NewEnvelope wraps a payload for publishing.
func NewEnvelope(event string, data any) (Envelope, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return Envelope{Event: event, Version: 1, OccurredAt: time.Now().UTC(), Data: b}, nil
}

// Decode unmarshals an envelope's payload into T.
func Decode[T any](e Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(e.Data, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s payload: %w", e.Event, err)
	}
	return t, nil
}

// ParseEnvelope unmarshals a raw log message.
func ParseEnvelope(b []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if e.Event == "" {
		return Envelope{}, fmt.Errorf("envelope missing event kind")
	}
	return e, nil
}
