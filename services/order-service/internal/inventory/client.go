package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Definitive rejections: the booking is dead, the worker must not retry.
var (
	ErrSoldOut       = errors.New("sold_out")
	ErrEventNotFound = errors.New("event_not_found")
)

// Client performs the authoritative capacity commit against the inventory
// service. The booking id travels with the request so the store applies the
// decrement at most once per booking, no matter how often a redelivery
// retries it. Any error other than ErrSoldOut / ErrEventNotFound is
// transient: the caller leaves the order PENDING and lets log redelivery
// retry. A timed-out commit is transient too, never assumed successful.
type Client struct {
	base string
	hc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{base: baseURL, hc: &http.Client{Timeout: 5 * time.Second}}
}

func (c *Client) Commit(ctx context.Context, eventID, bookingID string, ticketCount int64) error {
	body, err := json.Marshal(map[string]any{
		"booking_id":   bookingID,
		"ticket_count": ticketCount,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/v1/inventory/events/%s/capacity", c.base, eventID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("inventory commit: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusConflict:
		return ErrSoldOut
	case http.StatusNotFound:
		return ErrEventNotFound
	default:
		return fmt.Errorf("inventory commit: unexpected status %d", resp.StatusCode)
	}
}
