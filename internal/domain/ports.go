package domain

import "context"

type HotelRepository interface {
	// Write paths
	UpsertHotel(ctx context.Context, h Hotel) error

	// ReplaceReviews swaps the hotel's whole review set.
	ReplaceReviews(ctx context.Context, hotelID int64, rs []Review) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	CountHotels(ctx context.Context) (int, error)
	// ListReviews returns every review of the hotel, newest first.
	ListReviews(ctx context.Context, hotelID int64) ([]Review, error)
}

// BookingRepository stores whole booking values. Save inserts or replaces;
// there is no partial update.
type BookingRepository interface {
	SaveBooking(ctx context.Context, b Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	ListBookings(ctx context.Context, q BookingsQuery) ([]Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// CatalogSource yields raw hotel payloads for seeding.
type CatalogSource interface {
	FetchHotels(ctx context.Context) ([]map[string]any, error)
	FetchHotel(ctx context.Context, id int64) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// BookingsQuery filters the booking list; nil fields are ignored.
type BookingsQuery struct {
	UserID  *int64
	HotelID *int64
}

func (q BookingsQuery) Matches(b Booking) bool {
	if q.UserID != nil && (b.UserID == nil || *b.UserID != *q.UserID) {
		return false
	}
	if q.HotelID != nil && b.HotelID != *q.HotelID {
		return false
	}
	return true
}

type Stats struct {
	TotalHotels       int `json:"totalHotels"`
	TotalBookings     int `json:"totalBookings"`
	TotalUsers        int `json:"totalUsers"`
	ConfirmedBookings int `json:"confirmedBookings"`
	CancelledBookings int `json:"cancelledBookings"`
}
