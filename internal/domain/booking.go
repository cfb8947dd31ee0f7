package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Booking references its hotel by id only; HotelName and Location are a
// snapshot taken at submission.
type Booking struct {
	ID               string    `json:"id"`
	HotelID          int64     `json:"hotelId"`
	HotelName        string    `json:"hotelName"`
	Location         string    `json:"location"`
	RoomID           string    `json:"roomId,omitempty"`
	RoomType         string    `json:"roomType,omitempty"`
	CheckIn          Date      `json:"checkIn"`
	CheckOut         Date      `json:"checkOut"`
	Guests           int       `json:"guests"`
	NightlyPrice     int64     `json:"nightlyPrice"`
	TotalAmount      int64     `json:"totalAmount"`
	GuestName        string    `json:"guestName,omitempty"`
	GuestEmail       string    `json:"guestEmail,omitempty"`
	GuestPhone       string    `json:"guestPhone,omitempty"`
	UserID           *int64    `json:"userId,omitempty"`
	ConfirmationCode string    `json:"confirmationCode,omitempty"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"bookingDate"`
}

func (b Booking) Nights() int { return Nights(b.CheckIn, b.CheckOut) }

// Validate checks the invariants every non-draft booking must hold.
func (b Booking) Validate() error {
	if b.HotelID <= 0 {
		return fmt.Errorf("%w: hotel id is required", ErrValidation)
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return fmt.Errorf("%w: check-in and check-out are required", ErrValidation)
	}
	if b.Nights() <= 0 {
		return fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}
	if b.Guests < 1 {
		return fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}
	if b.NightlyPrice < 0 {
		return fmt.Errorf("%w: negative nightly price", ErrValidation)
	}
	if b.TotalAmount != Total(b.Nights(), b.NightlyPrice) {
		return fmt.Errorf("%w: total %d does not match %d nights at %d", ErrValidation, b.TotalAmount, b.Nights(), b.NightlyPrice)
	}
	if !b.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, b.Status)
	}
	return nil
}

// Confirm turns a draft into a confirmed booking created at now.
func (b Booking) Confirm(now time.Time) (Booking, error) {
	if b.Status != StatusDraft {
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, StatusConfirmed)
	}
	b.Status = StatusConfirmed
	b.CreatedAt = now
	if err := b.Validate(); err != nil {
		return Booking{}, err
	}
	return b, nil
}

// Cancel is idempotent: cancelling a cancelled booking returns it as is.
func (b Booking) Cancel() (Booking, error) {
	switch b.Status {
	case StatusCancelled:
		return b, nil
	case StatusConfirmed:
		b.Status = StatusCancelled
		return b, nil
	default:
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, StatusCancelled)
	}
}

func (b Booking) Complete() (Booking, error) {
	if b.Status != StatusConfirmed {
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, StatusCompleted)
	}
	b.Status = StatusCompleted
	return b, nil
}

// Transition applies the named target status.
func (b Booking) Transition(to Status) (Booking, error) {
	switch to {
	case StatusCancelled:
		return b.Cancel()
	case StatusCompleted:
		return b.Complete()
	default:
		return b, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	}
}
