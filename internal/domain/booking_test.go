package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_my_hotel/internal/domain"
)

func draft(t *testing.T) domain.Booking {
	in, out := mustDate(t, "2024-01-10"), mustDate(t, "2024-01-12")
	return domain.Booking{
		ID:           "b-1",
		HotelID:      3,
		HotelName:    "Oberoi",
		Location:     "Delhi",
		RoomType:     "Deluxe King",
		CheckIn:      in,
		CheckOut:     out,
		Guests:       2,
		NightlyPrice: 1000,
		TotalAmount:  2000,
		Status:       domain.StatusDraft,
	}
}

func TestBooking_ConfirmThenCancel(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b, err := draft(t).Confirm(now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, now, b.CreatedAt)

	c, err := b.Cancel()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, c.Status)

	// only the status differs
	c.Status = b.Status
	assert.Equal(t, b, c)
}

func TestBooking_CancelIsIdempotent(t *testing.T) {
	b, err := draft(t).Confirm(time.Now())
	require.NoError(t, err)
	once, err := b.Cancel()
	require.NoError(t, err)
	twice, err := once.Cancel()
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestBooking_NoTransitionsOutOfTerminalStates(t *testing.T) {
	b, err := draft(t).Confirm(time.Now())
	require.NoError(t, err)
	done, err := b.Complete()
	require.NoError(t, err)

	_, err = done.Cancel()
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	_, err = done.Complete()
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	cancelled, err := b.Cancel()
	require.NoError(t, err)
	_, err = cancelled.Complete()
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	_, err = cancelled.Confirm(time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestBooking_DraftCannotBeCancelled(t *testing.T) {
	_, err := draft(t).Cancel()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBooking_ConfirmRejectsZeroNights(t *testing.T) {
	d := draft(t)
	d.CheckOut = d.CheckIn
	d.TotalAmount = 0
	_, err := d.Confirm(time.Now())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBooking_ValidateTotalAndGuests(t *testing.T) {
	d := draft(t)
	d.TotalAmount = 1999
	assert.ErrorIs(t, d.Validate(), domain.ErrValidation)

	d = draft(t)
	d.Guests = 0
	assert.ErrorIs(t, d.Validate(), domain.ErrValidation)
}

func TestBooking_Transition(t *testing.T) {
	b, err := draft(t).Confirm(time.Now())
	require.NoError(t, err)
	_, err = b.Transition(domain.StatusDraft)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	c, err := b.Transition(domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, c.Status)
}

func TestHotel_Validate(t *testing.T) {
	h := domain.Hotel{ID: 1, Name: "Taj", Rating: 5, Price: 0, Rooms: []domain.Room{{ID: "1-1", Capacity: 2, Price: 100}}}
	require.NoError(t, h.Validate())

	h.Rating = 5.1
	assert.ErrorIs(t, h.Validate(), domain.ErrValidation)

	h.Rating = 4
	h.Rooms[0].Capacity = 0
	assert.ErrorIs(t, h.Validate(), domain.ErrValidation)

	h.Rooms[0].Capacity = 2
	h.LocationDetails = &domain.LocationDetails{Coordinates: &domain.Coordinates{Lat: 19.0, Lng: 72.8}}
	require.NoError(t, h.Validate())
	h.LocationDetails.Coordinates.Lat = 91
	assert.ErrorIs(t, h.Validate(), domain.ErrValidation)
}

func TestReview_Validate(t *testing.T) {
	r := domain.Review{ID: "r1", UserName: "Asha", Rating: 4.5}
	require.NoError(t, r.Validate())

	r.Rating = 6
	assert.ErrorIs(t, r.Validate(), domain.ErrValidation)

	r = domain.Review{Rating: 3}
	assert.ErrorIs(t, r.Validate(), domain.ErrValidation)
}

func TestBookingsQuery_Matches(t *testing.T) {
	uid := int64(7)
	b := domain.Booking{HotelID: 3, UserID: &uid}
	hid := int64(3)
	other := int64(8)
	assert.True(t, domain.BookingsQuery{}.Matches(b))
	assert.True(t, domain.BookingsQuery{UserID: &uid, HotelID: &hid}.Matches(b))
	assert.False(t, domain.BookingsQuery{UserID: &other}.Matches(b))
	assert.False(t, domain.BookingsQuery{UserID: &uid}.Matches(domain.Booking{HotelID: 3}))
}
