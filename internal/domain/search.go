package domain

import (
	"math"
	"strings"
)

// NoUpperBound is an open upper price bound.
const NoUpperBound int64 = math.MaxInt64

// PriceRange is an inclusive [Min, Max] range of nightly prices.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (r PriceRange) Contains(p int64) bool { return p >= r.Min && p <= r.Max }

// SearchCriteria narrows the catalog. Zero values disable each filter:
// an empty Location, a nil Price, a nil MinRating and no Amenities match
// every hotel.
type SearchCriteria struct {
	Location  string      `json:"location"`
	Price     *PriceRange `json:"priceRange,omitempty"`
	MinRating *float64    `json:"minRating,omitempty"`
	Amenities []string    `json:"amenities,omitempty"`
}

// Filter returns the hotels matching every criterion, in their original
// order. The result is never nil so an empty match is distinguishable from
// a catalog that has not been loaded.
func Filter(hotels []Hotel, c SearchCriteria) []Hotel {
	out := make([]Hotel, 0, len(hotels))
	loc := strings.ToLower(strings.TrimSpace(c.Location))
	for _, h := range hotels {
		if loc != "" && !strings.Contains(strings.ToLower(h.Location), loc) {
			continue
		}
		if c.Price != nil && !c.Price.Contains(h.Price) {
			continue
		}
		if c.MinRating != nil && h.Rating < *c.MinRating {
			continue
		}
		if !hasAmenities(h.Amenities, c.Amenities) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// hasAmenities reports whether every wanted label is a case-insensitive
// substring of at least one of the hotel's amenities.
func hasAmenities(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		found := false
		for _, a := range have {
			if strings.Contains(strings.ToLower(a), w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
