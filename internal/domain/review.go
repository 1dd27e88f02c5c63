package domain

import (
	"time"
)

// Reported flag values stored on a review.
const (
	ReportedVisible = 0
	ReportedHidden  = 1
)

// Review is a customer's evaluation of a catalog product.
type Review struct {
	ReviewID      string    `json:"review_id"`
	ProductID     int64     `json:"product_id"`
	Rating        int       `json:"rating"`
	Summary       string    `json:"summary"`
	Recommend     bool      `json:"recommend"`
	Response      *string   `json:"response"`
	Body          string    `json:"body"`
	Date          time.Time `json:"date"`
	ReviewerName  string    `json:"reviewer_name"`
	ReviewerEmail string    `json:"reviewer_email"`
	Photos        []string  `json:"photos"`
	Helpfulness   int       `json:"helpfulness"`
	Reported      int       `json:"reported"`
}

// ReviewSubmission is the payload of a new review together with the
// reviewer's score for each characteristic id of the product.
type ReviewSubmission struct {
	Rating          int               `json:"rating"`
	Summary         string            `json:"summary"`
	Body            string            `json:"body"`
	Recommend       bool              `json:"recommend"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Characteristics map[int64]float64 `json:"characteristics"`
}

// SortMode selects the ordering and visibility rules of a review listing.
type SortMode string

const (
	SortUnspecified SortMode = ""
	SortNewest      SortMode = "newest"
	SortHelpful     SortMode = "helpful"
	SortRelevant    SortMode = "relevant"
)

// ParseSortMode maps s to a known mode. Unknown values fall back to
// SortUnspecified with ok reporting false.
func ParseSortMode(s string) (mode SortMode, ok bool) {
	switch m := SortMode(s); m {
	case SortUnspecified, SortNewest, SortHelpful, SortRelevant:
		return m, true
	default:
		return SortUnspecified, false
	}
}

// IncludesReported reports whether listings in this mode show reported
// reviews. Only "relevant" does.
// TODO(product): confirm with product owners whether "relevant" should hide
// reported reviews like every other mode.
func (m SortMode) IncludesReported() bool {
	return m == SortRelevant
}
