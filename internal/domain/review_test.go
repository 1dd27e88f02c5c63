package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		in     string
		want   SortMode
		wantOK bool
	}{
		{"", SortUnspecified, true},
		{"newest", SortNewest, true},
		{"helpful", SortHelpful, true},
		{"relevant", SortRelevant, true},
		{"oldest", SortUnspecified, false},
		{"Newest", SortUnspecified, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSortMode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSortMode_IncludesReported(t *testing.T) {
	assert.False(t, SortUnspecified.IncludesReported())
	assert.False(t, SortNewest.IncludesReported())
	assert.False(t, SortHelpful.IncludesReported())
	assert.True(t, SortRelevant.IncludesReported())
}
