package shared_test

import (
	"testing"
	"time"

	"book_my_hotel/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOOKING_STORE", "")
	t.Setenv("SUBMIT_DELAY_MS", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	c := shared.Load()
	if c.BookingStore != shared.BookingStoreMySQL {
		t.Fatalf("store: %s", c.BookingStore)
	}
	if c.SubmitDelay != 2*time.Second {
		t.Fatalf("delay: %s", c.SubmitDelay)
	}
	if c.HTTPTimeout != 15*time.Second {
		t.Fatalf("timeout: %s", c.HTTPTimeout)
	}
	if c.BookingsKey != "hotelBookings" {
		t.Fatalf("key: %s", c.BookingsKey)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BOOKING_STORE", "redis")
	t.Setenv("SUBMIT_DELAY_MS", "10")
	t.Setenv("SEED_WORKERS", "x")
	c := shared.Load()
	if c.BookingStore != shared.BookingStoreRedis || c.SubmitDelay != 10*time.Millisecond {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.SeedWorkers != 8 {
		t.Fatalf("bad int should fall back to default, got %d", c.SeedWorkers)
	}
}

func TestLoad_UnknownStoreFallsBack(t *testing.T) {
	t.Setenv("BOOKING_STORE", "sqlite")
	if c := shared.Load(); c.BookingStore != shared.BookingStoreMySQL {
		t.Fatalf("store: %s", c.BookingStore)
	}
}

func TestLoad_TimeoutCoversSubmitDelay(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("SUBMIT_DELAY_MS", "30000")
	c := shared.Load()
	if c.HTTPTimeout != 35*time.Second {
		t.Fatalf("timeout %s must cover a %s delay", c.HTTPTimeout, c.SubmitDelay)
	}

	t.Setenv("REQUEST_TIMEOUT_SECONDS", "60")
	if c := shared.Load(); c.HTTPTimeout != time.Minute {
		t.Fatalf("explicit timeout above the floor must be kept, got %s", c.HTTPTimeout)
	}
}
