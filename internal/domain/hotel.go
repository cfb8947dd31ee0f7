package domain

import "fmt"

// Hotel is a catalog entry. Price is the headline nightly price in whole
// currency units; each Room carries its own nightly price.
type Hotel struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Rating      float64  `json:"rating"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
	Rooms       []Room   `json:"rooms"`

	LocationDetails *LocationDetails `json:"locationDetails,omitempty"`
}

type LocationDetails struct {
	Address           string       `json:"address"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
	NearbyAttractions []string     `json:"nearbyAttractions"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Room struct {
	ID        string   `json:"id"`
	HotelID   int64    `json:"-"`
	Type      string   `json:"type"`
	Price     int64    `json:"price"`
	Capacity  int      `json:"capacity"`
	Available bool     `json:"available"`
	Features  []string `json:"features,omitempty"`
}

const MaxRating = 5.0

func (h Hotel) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("%w: hotel %d has no name", ErrValidation, h.ID)
	}
	if h.Rating < 0 || h.Rating > MaxRating {
		return fmt.Errorf("%w: hotel %d rating %.2f outside [0,5]", ErrValidation, h.ID, h.Rating)
	}
	if h.Price < 0 {
		return fmt.Errorf("%w: hotel %d has negative price", ErrValidation, h.ID)
	}
	if c := h.coordinates(); c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180) {
		return fmt.Errorf("%w: hotel %d coordinates out of range", ErrValidation, h.ID)
	}
	for _, r := range h.Rooms {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("hotel %d: %w", h.ID, err)
		}
	}
	return nil
}

func (r Room) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: room without id", ErrValidation)
	}
	if r.Capacity < 1 {
		return fmt.Errorf("%w: room %s capacity must be positive", ErrValidation, r.ID)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: room %s has negative price", ErrValidation, r.ID)
	}
	return nil
}

// FindRoom returns the room with the given id.
func (h Hotel) FindRoom(id string) (Room, bool) {
	for _, r := range h.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

func (h Hotel) coordinates() *Coordinates {
	if h.LocationDetails == nil {
		return nil
	}
	return h.LocationDetails.Coordinates
}
