package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "book_my_hotel/internal/adapters/redis"
	"book_my_hotel/internal/domain"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redisad.Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.NewClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return mr, redisad.New(c)
}

func TestCache_SetGetDel(t *testing.T) {
	mr, cache := newClient(t)
	ctx := context.Background()

	var h domain.Hotel
	ok, err := cache.Get(ctx, "hotel:1", &h)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	in := domain.Hotel{ID: 1, Name: "Taj", Location: "Mumbai", Price: 15000, Rooms: []domain.Room{{ID: "1-1", Type: "Deluxe", Price: 15000, Capacity: 2, Available: true}}}
	if err := cache.Set(ctx, "hotel:1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = cache.Get(ctx, "hotel:1", &h)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if h.Name != "Taj" || len(h.Rooms) != 1 || h.Rooms[0].Price != 15000 {
		t.Fatalf("unexpected cached hotel: %+v", h)
	}

	mr.FastForward(61 * time.Second)
	if ok, _ := cache.Get(ctx, "hotel:1", &h); ok {
		t.Fatalf("expected entry to expire")
	}

	_ = cache.Set(ctx, "hotel:1", in, 60)
	if err := cache.Del(ctx, "hotel:1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("hotel:1") {
		t.Fatalf("expected key to be deleted")
	}
}
