package pagination

import "math"

// Defaults applied when a caller passes a zero or negative page or count.
const (
	DefaultPage    = 1
	DefaultPerPage = 5
)

// Params describes one page of an offset-paginated listing.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// New normalizes page and perPage, substituting the defaults for values < 1.
func New(page, perPage int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Offset is the number of records skipped before the page starts:
// PerPage × (Page − 1). Its cost grows with the page number and a record can
// move between pages when rows are inserted concurrently. The result
// saturates at math.MaxInt so a huge page yields an empty page, never a
// negative offset.
func (p Params) Offset() int {
	if p.PerPage > 0 && p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return p.PerPage * (p.Page - 1)
}

// Limit is the maximum number of records on the page.
func (p Params) Limit() int {
	return p.PerPage
}
