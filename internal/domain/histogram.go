package domain

import "strconv"

// BucketOther collects every value outside a histogram's boundaries.
const BucketOther = "Other"

// Bucket is one histogram bin.
type Bucket struct {
	Label string `json:"_id"`
	Count int64  `json:"count"`
}

// Histogram lists every bucket in a fixed order, empty ones with count 0.
type Histogram []Bucket

// Labels for the two review distributions, in output order.
var (
	RecommendLabels = []string{"0", "1", BucketOther}
	RatingLabels    = []string{"1", "2", "3", "4", "5", BucketOther}
)

// RecommendBucket maps a recommend flag onto [0, 1, 2): false is "0", true is
// "1" and a missing value is "Other".
func RecommendBucket(recommend *bool) string {
	switch {
	case recommend == nil:
		return BucketOther
	case *recommend:
		return "1"
	default:
		return "0"
	}
}

// RatingBucket maps a rating onto [1, 2, 3, 4, 5, 6). Missing, zero,
// negative and values above 5 are "Other".
func RatingBucket(rating *int) string {
	if rating == nil || *rating < 1 || *rating > 5 {
		return BucketOther
	}
	return strconv.Itoa(*rating)
}

// NewHistogram returns one zero-count bucket per label.
func NewHistogram(labels []string) Histogram {
	h := make(Histogram, len(labels))
	for i, l := range labels {
		h[i] = Bucket{Label: l}
	}
	return h
}

// Add increments the bucket called label by n. Labels the histogram does not
// know are counted as "Other".
func (h Histogram) Add(label string, n int64) {
	other := -1
	for i := range h {
		if h[i].Label == label {
			h[i].Count += n
			return
		}
		if h[i].Label == BucketOther {
			other = i
		}
	}
	if other >= 0 {
		h[other].Count += n
	}
}

// Total is the sum of all bucket counts.
func (h Histogram) Total() int64 {
	var total int64
	for _, b := range h {
		total += b.Count
	}
	return total
}

// Count returns the count of the bucket called label.
func (h Histogram) Count(label string) int64 {
	for _, b := range h {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}
