package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_my_hotel/internal/domain"
)

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestQuote_TwoNights(t *testing.T) {
	q := domain.Quote(mustDate(t, "2024-01-10"), mustDate(t, "2024-01-12"), 1000)
	assert.Equal(t, 2, q.Nights)
	assert.Equal(t, int64(2000), q.Total)
	assert.True(t, q.Bookable)
}

func TestQuote_SameDayIsNotBookable(t *testing.T) {
	q := domain.Quote(mustDate(t, "2024-01-10"), mustDate(t, "2024-01-10"), 1000)
	assert.Equal(t, 0, q.Nights)
	assert.False(t, q.Bookable)
	assert.Zero(t, q.Total)
}

func TestQuote_ReversedDatesAreNotBookable(t *testing.T) {
	q := domain.Quote(mustDate(t, "2024-01-12"), mustDate(t, "2024-01-10"), 1000)
	assert.Equal(t, -2, q.Nights)
	assert.False(t, q.Bookable)
}

func TestQuote_MissingDateIsNotBookable(t *testing.T) {
	q := domain.Quote(domain.Date{}, mustDate(t, "2024-01-10"), 1000)
	assert.False(t, q.Bookable)
}

func TestNights_AcrossMonthsAndLeapDay(t *testing.T) {
	assert.Equal(t, 3, domain.Nights(mustDate(t, "2024-02-27"), mustDate(t, "2024-03-01")))
	assert.Equal(t, 1, domain.Nights(mustDate(t, "2024-12-31"), mustDate(t, "2025-01-01")))
}

func TestNights_CenturiesApart(t *testing.T) {
	in, out := mustDate(t, "1900-01-01"), mustDate(t, "2300-01-01")
	assert.Equal(t, 146097, domain.Nights(in, out))
	assert.Equal(t, -146097, domain.Nights(out, in))

	q := domain.Quote(in, out, 1000)
	assert.Equal(t, int64(146097000), q.Total)
	assert.True(t, q.Bookable)
}

func TestNights_AtLeastOneAndMonotonic(t *testing.T) {
	in := mustDate(t, "2024-03-25")
	prev := 0
	for days := 1; days <= 60; days++ {
		out := domain.DateOf(in.Time().AddDate(0, 0, days))
		n := domain.Nights(in, out)
		require.GreaterOrEqual(t, n, 1)
		require.GreaterOrEqual(t, n, prev)
		prev = n
	}
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, 1, 10, 23, 59, 0, 0, ist)
	early := time.Date(2024, 1, 12, 0, 1, 0, 0, ist)
	assert.Equal(t, 2, domain.Nights(domain.DateOf(late), domain.DateOf(early)))
}

func TestTotal_Exact(t *testing.T) {
	assert.Equal(t, int64(7*18999), domain.Total(7, 18999))
	assert.Equal(t, int64(0), domain.Total(0, 18999))
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		In  domain.Date `json:"in"`
		Out domain.Date `json:"out"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"in":"2024-01-10","out":""}`), &v))
	assert.Equal(t, "2024-01-10", v.In.String())
	assert.True(t, v.Out.IsZero())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"in":"2024-01-10","out":""}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"in":"10/01/2024"}`), &v))
}
