package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"book_my_hotel/internal/app"
	"book_my_hotel/internal/domain"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type guestDetails struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

type quoteRequest struct {
	HotelID  int64  `json:"hotelId" validate:"required,gt=0"`
	RoomID   string `json:"roomId"`
	CheckIn  string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
}

// bookingRequest is the checkout form; every guest field is required.
type bookingRequest struct {
	quoteRequest
	Guests int          `json:"guests" validate:"required,min=1"`
	Guest  guestDetails `json:"guest" validate:"required"`
	UserID *int64       `json:"userId,omitempty" validate:"omitempty,gt=0"`
}

// Only the status of a booking can change.
type patchBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=cancelled completed"`
}

type createUserRequest struct {
	Name        string             `json:"name" validate:"required"`
	Email       string             `json:"email" validate:"required,email"`
	Phone       string             `json:"phone"`
	Preferences domain.Preferences `json:"preferences"`
}

type patchUserRequest struct {
	Name        *string             `json:"name,omitempty" validate:"omitempty,min=1"`
	Email       *string             `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string             `json:"phone,omitempty"`
	Preferences *domain.Preferences `json:"preferences,omitempty"`
}

func (q quoteRequest) toApp() (app.QuoteRequest, error) {
	in, err := domain.ParseDate(q.CheckIn)
	if err != nil {
		return app.QuoteRequest{}, err
	}
	out, err := domain.ParseDate(q.CheckOut)
	if err != nil {
		return app.QuoteRequest{}, err
	}
	return app.QuoteRequest{HotelID: q.HotelID, RoomID: q.RoomID, CheckIn: in, CheckOut: out}, nil
}

func (b bookingRequest) toApp() (app.SubmitRequest, error) {
	q, err := b.quoteRequest.toApp()
	if err != nil {
		return app.SubmitRequest{}, err
	}
	return app.SubmitRequest{
		HotelID:    q.HotelID,
		RoomID:     q.RoomID,
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		Guests:     b.Guests,
		GuestName:  strings.TrimSpace(b.Guest.FirstName + " " + b.Guest.LastName),
		GuestEmail: b.Guest.Email,
		GuestPhone: b.Guest.Phone,
		UserID:     b.UserID,
	}, nil
}

func (p patchUserRequest) toDomain() domain.UserPatch {
	return domain.UserPatch{Name: p.Name, Email: p.Email, Phone: p.Phone, Preferences: p.Preferences}
}

// decode reads a JSON body into dst, rejecting unknown fields, then runs
// struct validation. The returned error is ready for a 400/422 problem.
func decode(r *http.Request, dst any) (int, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return http.StatusBadRequest, fmt.Errorf("malformed JSON body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return http.StatusUnprocessableEntity, validationDetail(err)
	}
	return 0, nil
}

func validationDetail(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	parts := make([]string, 0, len(ves))
	for _, fe := range ves {
		field := fe.Field()
		if strings.Contains(fe.Namespace(), ".guest.") {
			field = "guest." + field
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
