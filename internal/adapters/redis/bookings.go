package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"book_my_hotel/internal/domain"
)

// BookingStore keeps every booking as one JSON list under a single key,
// the way the browser client keeps them in local storage. Each change
// reads the list, edits it and overwrites the whole value.
type BookingStore struct {
	c   *redis.Client
	key string
	mu  sync.Mutex
}

func NewBookingStore(c *redis.Client, key string) *BookingStore {
	return &BookingStore{c: c, key: key}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load decodes the stored list. A missing key is an empty list, and so is a
// malformed value: it is logged and replaced by the next write.
func load(ctx context.Context, g getter, key string) ([]domain.Booking, error) {
	raw, err := g.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	var out []domain.Booking
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("malformed booking list, starting empty")
		return []domain.Booking{}, nil
	}
	if out == nil {
		out = []domain.Booking{}
	}
	return out, nil
}

// update runs fn over the current list inside WATCH so a writer in another
// process makes this one fail instead of being silently overwritten.
func (s *BookingStore) update(ctx context.Context, fn func([]domain.Booking) ([]domain.Booking, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.c.Watch(ctx, func(tx *redis.Tx) error {
		list, err := load(ctx, tx, s.key)
		if err != nil {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, s.key, b, 0)
			return nil
		})
		return err
	}, s.key)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("booking list changed concurrently: %w", err)
	}
	return err
}

// SaveBooking replaces the booking with the same id, or prepends a new one
// so the newest booking comes first.
func (s *BookingStore) SaveBooking(ctx context.Context, b domain.Booking) error {
	return s.update(ctx, func(list []domain.Booking) ([]domain.Booking, error) {
		for i := range list {
			if list[i].ID == b.ID {
				list[i] = b
				return list, nil
			}
		}
		return append([]domain.Booking{b}, list...), nil
	})
}

func (s *BookingStore) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	list, err := load(ctx, s.c, s.key)
	if err != nil {
		return domain.Booking{}, err
	}
	for _, b := range list {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}

func (s *BookingStore) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	list, err := load(ctx, s.c, s.key)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(list))
	for _, b := range list {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BookingStore) DeleteBooking(ctx context.Context, id string) error {
	return s.update(ctx, func(list []domain.Booking) ([]domain.Booking, error) {
		for i := range list {
			if list[i].ID == id {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}
