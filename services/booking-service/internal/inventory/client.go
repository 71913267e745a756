package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrEventNotFound = errors.New("event_not_found")

// Snapshot is the advisory read taken at intake time. It is not a
// reservation: capacity may change before the fulfillment worker commits.
type Snapshot struct {
	EventID          string `json:"event_id"`
	Event            string `json:"event"`
	LeftCapacity     int64  `json:"left_capacity"`
	TicketPriceCents int64  `json:"ticket_price_cents"`
}

// Client talks to the inventory service's read API.
type Client struct {
	base string
	hc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{base: baseURL, hc: &http.Client{Timeout: 5 * time.Second}}
}

func (c *Client) Event(ctx context.Context, eventID string) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/inventory/events/%s", c.base, eventID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory peek: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var s Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
			return nil, fmt.Errorf("inventory peek decode: %w", err)
		}
		return &s, nil
	case http.StatusNotFound:
		return nil, ErrEventNotFound
	default:
		return nil, fmt.Errorf("inventory peek: unexpected status %d", resp.StatusCode)
	}
}
