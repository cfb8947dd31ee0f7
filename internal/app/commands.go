package app

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"book_my_hotel/internal/adapters/observability"
	"book_my_hotel/internal/domain"
	"book_my_hotel/internal/shared"
)

// HotelLookup resolves a hotel by id. Both the repository and the cached
// QueryService satisfy it.
type HotelLookup interface {
	GetHotel(ctx context.Context, id int64) (domain.Hotel, error)
}

type QuoteRequest struct {
	HotelID  int64
	RoomID   string
	CheckIn  domain.Date
	CheckOut domain.Date
}

type SubmitRequest struct {
	HotelID    int64
	RoomID     string
	CheckIn    domain.Date
	CheckOut   domain.Date
	Guests     int
	GuestName  string
	GuestEmail string
	GuestPhone string
	UserID     *int64
}

type BookingService struct {
	hotels   HotelLookup
	bookings domain.BookingRepository
	clock    shared.Clock
	delay    time.Duration
}

// NewBookingService builds the service. delay is the fixed confirmation
// latency every submission waits before it is confirmed.
func NewBookingService(h HotelLookup, b domain.BookingRepository, clk shared.Clock, delay time.Duration) *BookingService {
	if clk == nil {
		clk = shared.RealClock{}
	}
	return &BookingService{hotels: h, bookings: b, clock: clk, delay: delay}
}

// nightly resolves the price per night: the room's when a room is chosen,
// the hotel's headline price otherwise.
func (s *BookingService) nightly(ctx context.Context, hotelID int64, roomID string) (domain.Hotel, domain.Room, int64, error) {
	h, err := s.hotels.GetHotel(ctx, hotelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Hotel{}, domain.Room{}, 0, fmt.Errorf("hotel %d: %w", hotelID, domain.ErrNotFound)
		}
		return domain.Hotel{}, domain.Room{}, 0, err
	}
	if roomID == "" {
		return h, domain.Room{}, h.Price, nil
	}
	r, ok := h.FindRoom(roomID)
	if !ok {
		return domain.Hotel{}, domain.Room{}, 0, fmt.Errorf("%w: hotel %d has no room %q", domain.ErrValidation, hotelID, roomID)
	}
	return h, r, r.Price, nil
}

func (s *BookingService) Quote(ctx context.Context, req QuoteRequest) (domain.StayQuote, error) {
	_, _, price, err := s.nightly(ctx, req.HotelID, req.RoomID)
	if err != nil {
		return domain.StayQuote{}, err
	}
	return domain.Quote(req.CheckIn, req.CheckOut, price), nil
}

// Submit validates the stay, waits the fixed confirmation delay and stores
// a confirmed booking. Nothing is retried.
func (s *BookingService) Submit(ctx context.Context, req SubmitRequest) (domain.Booking, error) {
	start := time.Now()
	b, err := s.submit(ctx, req)
	observability.ObserveSubmit(time.Since(start))
	if err != nil {
		observability.ObserveBooking("rejected")
		log.Info().Err(err).Int64("hotel_id", req.HotelID).Str("room_id", req.RoomID).Msg("booking rejected")
		return domain.Booking{}, err
	}
	observability.ObserveBooking("confirmed")
	log.Info().Str("booking_id", b.ID).Int64("hotel_id", b.HotelID).Int64("total", b.TotalAmount).Msg("booking confirmed")
	return b, nil
}

func (s *BookingService) submit(ctx context.Context, req SubmitRequest) (domain.Booking, error) {
	h, room, price, err := s.nightly(ctx, req.HotelID, req.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if req.Guests < 1 {
		return domain.Booking{}, fmt.Errorf("%w: at least one guest is required", domain.ErrValidation)
	}
	if room.ID != "" {
		if !room.Available {
			return domain.Booking{}, fmt.Errorf("room %s: %w", room.ID, domain.ErrRoomUnavailable)
		}
		if req.Guests > room.Capacity {
			return domain.Booking{}, fmt.Errorf("%w: room %s sleeps %d, got %d guests", domain.ErrValidation, room.ID, room.Capacity, req.Guests)
		}
	}
	q := domain.Quote(req.CheckIn, req.CheckOut, price)
	if !q.Bookable {
		return domain.Booking{}, fmt.Errorf("%w: check-out must be after check-in", domain.ErrValidation)
	}

	draft := domain.Booking{
		HotelID:      h.ID,
		HotelName:    h.Name,
		Location:     h.Location,
		RoomID:       room.ID,
		RoomType:     room.Type,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Guests:       req.Guests,
		NightlyPrice: q.NightlyPrice,
		TotalAmount:  q.Total,
		GuestName:    req.GuestName,
		GuestEmail:   req.GuestEmail,
		GuestPhone:   req.GuestPhone,
		UserID:       req.UserID,
		Status:       domain.StatusDraft,
	}

	// stands in for a payment / inventory call
	if !sleepCtx(ctx, s.delay) {
		return domain.Booking{}, ctx.Err()
	}

	draft.ID = uuid.NewString()
	draft.ConfirmationCode = confirmationCode()
	b, err := draft.Confirm(s.clock.Now())
	if err != nil {
		return domain.Booking{}, err
	}
	if err := s.bookings.SaveBooking(ctx, b); err != nil {
		return domain.Booking{}, fmt.Errorf("save booking: %w", err)
	}
	return b, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) (domain.Booking, error) {
	return s.Transition(ctx, id, domain.StatusCancelled)
}

func (s *BookingService) Complete(ctx context.Context, id string) (domain.Booking, error) {
	return s.Transition(ctx, id, domain.StatusCompleted)
}

// Transition moves a stored booking to the target status and replaces the
// stored value. A no-op transition (re-cancel) writes nothing.
func (s *BookingService) Transition(ctx context.Context, id string, to domain.Status) (domain.Booking, error) {
	cur, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	next, err := cur.Transition(to)
	if err != nil {
		return cur, err
	}
	if next.Status == cur.Status {
		return cur, nil
	}
	if err := s.bookings.SaveBooking(ctx, next); err != nil {
		return domain.Booking{}, fmt.Errorf("save booking %s: %w", id, err)
	}
	observability.ObserveBooking(string(to))
	log.Info().Str("booking_id", id).Str("from", cur.Status.String()).Str("to", next.Status.String()).Msg("booking status changed")
	return next, nil
}

// Delete removes a booking record. Only the admin REST surface calls it.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	if err := s.bookings.DeleteBooking(ctx, id); err != nil {
		return err
	}
	observability.ObserveBooking("deleted")
	log.Warn().Str("booking_id", id).Msg("booking deleted")
	return nil
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// confirmationCode returns 9 upper-case base36 characters.
func confirmationCode() string {
	var b [9]byte
	if _, err := crand.Read(b[:]); err != nil {
		// not fatal: the id, not the code, identifies the booking
		n := time.Now().UnixNano()
		for i := range b {
			b[i] = byte(n >> (i * 7))
		}
	}
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = codeAlphabet[int(v)%len(codeAlphabet)]
	}
	return string(out)
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
