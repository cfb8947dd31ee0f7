package app

import (
	"context"
	"fmt"
	"time"

	"book_my_hotel/internal/domain"
)

const catalogKey = "hotels:all"

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

func reviewsKey(id int64) string { return fmt.Sprintf("reviews:%d", id) }

type QueryService struct {
	hotels   domain.HotelRepository
	bookings domain.BookingRepository
	users    domain.UserRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(h domain.HotelRepository, b domain.BookingRepository, u domain.UserRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{hotels: h, bookings: b, users: u, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	// a corrupt entry counts as a miss
	if ok, err := s.cache.Get(ctx, key, &h); ok && err == nil {
		return h, nil
	}
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

// SearchHotels filters the full catalog. The catalog is small enough to
// cache as one value and filter in memory.
func (s *QueryService) SearchHotels(ctx context.Context, c domain.SearchCriteria) ([]domain.Hotel, error) {
	all, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Filter(all, c), nil
}

func (s *QueryService) catalog(ctx context.Context) ([]domain.Hotel, error) {
	var all []domain.Hotel
	if ok, err := s.cache.Get(ctx, catalogKey, &all); ok && err == nil && all != nil {
		return all, nil
	}
	all, err := s.hotels.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	// copy so callers filtering the result never share the repo's backing array
	cp := make([]domain.Hotel, len(all))
	copy(cp, all)
	_ = s.cache.Set(ctx, catalogKey, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

// ListReviews returns the newest pg.Limit reviews of a hotel. The whole
// review set is cached per hotel so every limit shares one entry.
func (s *QueryService) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	if _, err := s.GetHotel(ctx, id); err != nil {
		return domain.ReviewsPage{}, err
	}

	key := reviewsKey(id)
	var all []domain.Review
	if ok, err := s.cache.Get(ctx, key, &all); !ok || err != nil || all == nil {
		rs, err := s.hotels.ListReviews(ctx, id)
		if err != nil {
			return domain.ReviewsPage{}, err
		}
		// copy slice to avoid aliasing the repo's backing array
		all = make([]domain.Review, len(rs))
		copy(all, rs)
		_ = s.cache.Set(ctx, key, all, int(s.cacheTTL.Seconds()))
	}

	limit := pg.Limit
	if limit <= 0 {
		limit = domain.DefaultReviewLimit
	}
	if limit > len(all) {
		limit = len(all)
	}
	items := make([]domain.Review, limit)
	copy(items, all[:limit])
	return domain.ReviewsPage{Items: items, Total: len(all)}, nil
}

func (s *QueryService) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

func (s *QueryService) ListBookings(ctx context.Context, q domain.BookingsQuery) ([]domain.Booking, error) {
	return s.bookings.ListBookings(ctx, q)
}

func (s *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	var st domain.Stats
	n, err := s.hotels.CountHotels(ctx)
	if err != nil {
		return st, fmt.Errorf("count hotels: %w", err)
	}
	st.TotalHotels = n

	bs, err := s.bookings.ListBookings(ctx, domain.BookingsQuery{})
	if err != nil {
		return st, fmt.Errorf("list bookings: %w", err)
	}
	st.TotalBookings = len(bs)
	for _, b := range bs {
		switch b.Status {
		case domain.StatusConfirmed:
			st.ConfirmedBookings++
		case domain.StatusCancelled:
			st.CancelledBookings++
		}
	}

	us, err := s.users.ListUsers(ctx)
	if err != nil {
		return st, fmt.Errorf("list users: %w", err)
	}
	st.TotalUsers = len(us)
	return st, nil
}
