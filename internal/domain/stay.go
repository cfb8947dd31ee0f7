package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day or zone. Check-in and
// check-out are compared as dates so local offsets never shift a stay by a
// night.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrValidation, s)
	}
	return DateOf(t), nil
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool { return d == Date{} }

// Time is midnight UTC of the date.
func (d Date) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

const secondsPerDay = 24 * 60 * 60

// Nights is the number of whole days between check-in and check-out. It is
// zero or negative when check-out is not after check-in. Dates are UTC
// midnights, so the difference is always a whole number of days.
func Nights(checkIn, checkOut Date) int {
	return int((checkOut.Time().Unix() - checkIn.Time().Unix()) / secondsPerDay)
}

func Total(nights int, nightly int64) int64 { return int64(nights) * nightly }

// StayQuote is the price of a stay. Bookable is false whenever the stay
// has no nights, and submission must be refused in that case.
type StayQuote struct {
	CheckIn      Date  `json:"checkIn"`
	CheckOut     Date  `json:"checkOut"`
	Nights       int   `json:"nights"`
	NightlyPrice int64 `json:"nightlyPrice"`
	Total        int64 `json:"total"`
	Bookable     bool  `json:"bookable"`
}

func Quote(checkIn, checkOut Date, nightly int64) StayQuote {
	n := Nights(checkIn, checkOut)
	q := StayQuote{CheckIn: checkIn, CheckOut: checkOut, Nights: n, NightlyPrice: nightly}
	if n > 0 && !checkIn.IsZero() && !checkOut.IsZero() {
		q.Total = Total(n, nightly)
		q.Bookable = true
	}
	return q
}
