// internal/adapters/jsonserver/client.go
package jsonserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"book_my_hotel/internal/adapters/observability"
)

// APIError is any non-2xx answer. It is not classified further.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.Status)
}

// Client talks to a json-server style REST backend (GET /hotels etc.).
// Calls are rate limited client-side and never retried.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ---- Public API ----

// FetchHotels returns the raw hotel objects; the seeder maps them.
func (c *Client) FetchHotels(ctx context.Context) ([]map[string]any, error) {
	var out []map[string]any
	return out, c.get(ctx, "hotels", "/hotels", &out)
}

func (c *Client) FetchHotel(ctx context.Context, id int64) (map[string]any, error) {
	var out map[string]any
	return out, c.get(ctx, "hotel", fmt.Sprintf("/hotels/%d", id), &out)
}

// Ping reports whether the backend answers at all.
func (c *Client) Ping(ctx context.Context) bool {
	var discard []json.RawMessage
	return c.get(ctx, "hotels", "/hotels", &discard) == nil
}

// ---- Internals ----

func (c *Client) get(ctx context.Context, endpoint, path string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "book-my-hotel/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("jsonserver", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("jsonserver", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// keep a small body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprint(resp.StatusCode))),
			Body:       strings.TrimSpace(string(b)),
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
