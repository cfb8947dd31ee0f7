package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book_my_hotel/internal/domain"
)

func catalog() []domain.Hotel {
	return []domain.Hotel{
		{ID: 1, Name: "Taj", Location: "Mumbai", Rating: 4.9, Price: 15000, Amenities: []string{"Free WiFi", "Swimming Pool"}},
		{ID: 2, Name: "Leela", Location: "Udaipur", Rating: 4.8, Price: 25000, Amenities: []string{"Lake View", "Infinity Pool"}},
		{ID: 3, Name: "Oberoi", Location: "Delhi", Rating: 4.7, Price: 18000, Amenities: []string{"Spa", "Valet Parking"}},
		{ID: 4, Name: "Kumarakom", Location: "Kerala", Rating: 4.6, Price: 12000, Amenities: []string{"Ayurvedic Spa"}},
	}
}

func ids(hs []domain.Hotel) []int64 {
	out := make([]int64, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID)
	}
	return out
}

func TestFilter_LocationAndPrice(t *testing.T) {
	hotels := []domain.Hotel{
		{ID: 1, Location: "Mumbai", Price: 15000},
		{ID: 2, Location: "Delhi", Price: 18000},
	}
	got := domain.Filter(hotels, domain.SearchCriteria{
		Location: "delhi",
		Price:    &domain.PriceRange{Min: 0, Max: 20000},
	})
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilter_EmptyCriteriaMatchesAll(t *testing.T) {
	got := domain.Filter(catalog(), domain.SearchCriteria{})
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(got))
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	got := domain.Filter(catalog(), domain.SearchCriteria{Price: &domain.PriceRange{Min: 15000, Max: 18000}})
	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestFilter_NoUpperBound(t *testing.T) {
	got := domain.Filter(catalog(), domain.SearchCriteria{Price: &domain.PriceRange{Min: 18000, Max: domain.NoUpperBound}})
	assert.Equal(t, []int64{2, 3}, ids(got))
}

func TestFilter_InvertedRangeMatchesNothing(t *testing.T) {
	got := domain.Filter(catalog(), domain.SearchCriteria{Price: &domain.PriceRange{Min: 20000, Max: 1000}})
	assert.Empty(t, got)
}

func TestFilter_HighMaxStillFilters(t *testing.T) {
	// a large ceiling is an ordinary bound, the minimum still applies
	got := domain.Filter(catalog(), domain.SearchCriteria{Price: &domain.PriceRange{Min: 16000, Max: 1_000_000}})
	assert.Equal(t, []int64{2, 3}, ids(got))
}

func TestFilter_RatingAndAmenities(t *testing.T) {
	minRating := 4.7
	got := domain.Filter(catalog(), domain.SearchCriteria{MinRating: &minRating, Amenities: []string{"pool"}})
	assert.Equal(t, []int64{1, 2}, ids(got))

	got = domain.Filter(catalog(), domain.SearchCriteria{Amenities: []string{"spa", "parking"}})
	assert.Equal(t, []int64{3}, ids(got))
}

func TestFilter_EmptyResultIsNotNil(t *testing.T) {
	got := domain.Filter(catalog(), domain.SearchCriteria{Location: "Goa"})
	require.NotNil(t, got)
	assert.Len(t, got, 0)

	got = domain.Filter(nil, domain.SearchCriteria{})
	assert.NotNil(t, got)
}

func TestFilter_IsOrderedSubsequence(t *testing.T) {
	in := catalog()
	cases := []domain.SearchCriteria{
		{Location: "a"},
		{Location: "E"},
		{Price: &domain.PriceRange{Min: 12000, Max: 18000}},
		{Amenities: []string{"spa"}},
	}
	for _, c := range cases {
		out := domain.Filter(in, c)
		j := 0
		for _, h := range out {
			for j < len(in) && in[j].ID != h.ID {
				j++
			}
			require.Less(t, j, len(in), "result %v is not a subsequence of input", ids(out))
			j++
		}
	}
}
