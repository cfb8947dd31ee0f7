package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"book_my_hotel/internal/domain"
)

// ---- fakes ----

type fakeHotels struct {
	mu          sync.Mutex
	hotels      map[int64]domain.Hotel
	order       []int64
	lists       int
	reviews     map[int64][]domain.Review
	reviewLists int
}

func newFakeHotels(hs ...domain.Hotel) *fakeHotels {
	f := &fakeHotels{hotels: map[int64]domain.Hotel{}, reviews: map[int64][]domain.Review{}}
	for _, h := range hs {
		_ = f.UpsertHotel(context.Background(), h)
	}
	return f
}

func (f *fakeHotels) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.hotels[h.ID]; !ok {
		f.order = append(f.order, h.ID)
	}
	f.hotels[h.ID] = h
	return nil
}
func (f *fakeHotels) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}
func (f *fakeHotels) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	out := make([]domain.Hotel, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.hotels[id])
	}
	return out, nil
}
func (f *fakeHotels) CountHotels(ctx context.Context) (int, error) { return len(f.hotels), nil }

func (f *fakeHotels) ReplaceReviews(ctx context.Context, hotelID int64, rs []domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews[hotelID] = append([]domain.Review{}, rs...)
	return nil
}

// ListReviews keeps insertion order; tests store reviews newest first.
func (f *fakeHotels) ListReviews(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviewLists++
	return f.reviews[hotelID], nil
}

type fakeBookings struct {
	mu    sync.Mutex
	items []domain.Booking
	saves int
}

func (f *fakeBookings) SaveBooking(ctx context.Context, b domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	for i := range f.items {
		if f.items[i].ID == b.ID {
			f.items[i] = b
			return nil
		}
	}
	f.items = append([]domain.Booking{b}, f.items...)
	return nil
}
func (f *fakeBookings) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}
func (f *fakeBookings) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Booking{}
	for _, b := range f.items {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}
func (f *fakeBookings) DeleteBooking(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUsers struct {
	items []domain.User
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	u.ID = int64(len(f.items) + 1)
	f.items = append(f.items, u)
	return u, nil
}
func (f *fakeUsers) UpdateUser(ctx context.Context, u domain.User) error {
	for i := range f.items {
		if f.items[i].ID == u.ID {
			f.items[i] = u
			return nil
		}
	}
	return domain.ErrNotFound
}
func (f *fakeUsers) GetUser(ctx context.Context, id int64) (domain.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}
func (f *fakeUsers) ListUsers(ctx context.Context) ([]domain.User, error) { return f.items, nil }

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

func mustDate(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func taj() domain.Hotel {
	return domain.Hotel{
		ID: 1, Name: "The Taj Mahal Palace", Location: "Mumbai, Maharashtra", Rating: 4.9, Price: 15000,
		Amenities: []string{"Free WiFi", "Swimming Pool"},
		Rooms: []domain.Room{
			{ID: "1-1", Type: "Deluxe King", Price: 1000, Capacity: 2, Available: true},
			{ID: "1-2", Type: "Sea View Suite", Price: 30000, Capacity: 4, Available: false},
		},
	}
}

func oberoi() domain.Hotel {
	return domain.Hotel{ID: 3, Name: "The Oberoi", Location: "New Delhi, Delhi", Rating: 4.7, Price: 18000,
		Amenities: []string{"Spa"}, Rooms: []domain.Room{}}
}
