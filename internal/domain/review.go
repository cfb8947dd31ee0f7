package domain

import "fmt"

// Review is a guest review attached to a hotel.
type Review struct {
	ID       string  `json:"id"`
	HotelID  int64   `json:"-"`
	UserName string  `json:"userName"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     Date    `json:"date"`
}

func (r Review) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: review without id", ErrValidation)
	}
	if r.Rating < 0 || r.Rating > MaxRating {
		return fmt.Errorf("%w: review %s rating %.2f outside [0,5]", ErrValidation, r.ID, r.Rating)
	}
	return nil
}

const (
	DefaultReviewLimit = 50
	MaxReviewLimit     = 200
)

type PageQuery struct {
	Limit int
}

// ReviewsPage is the newest-first head of a hotel's reviews. Total counts
// every stored review, not only Items.
type ReviewsPage struct {
	Items []Review `json:"items"`
	Total int      `json:"total"`
}
