package content

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/nexstream/ott-server-go/internal/features/category"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{
			name:    "no ratings averages to zero",
			ratings: nil,
			want:    0,
		},
		{
			name:    "single rating",
			ratings: []int{4},
			want:    4,
		},
		{
			name:    "five and three average to four",
			ratings: []int{5, 3},
			want:    4,
		},
		{
			name:    "remaining rating after a delete",
			ratings: []int{3},
			want:    3,
		},
		{
			name:    "rounds to two decimal places",
			ratings: []int{5, 4, 4},
			want:    4.33,
		},
		{
			name:    "rounds half up",
			ratings: []int{5, 5, 4, 3, 3, 3},
			want:    3.83,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageRating(tt.ratings); got != tt.want {
				t.Errorf("AverageRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestDuplicateRatingOutcome(t *testing.T) {
	lookupFailure := fmt.Errorf("connection reset")

	tests := []struct {
		name      string
		lookupErr error
		want      error
	}{
		{
			name:      "existing rating found is a conflict",
			lookupErr: nil,
			want:      ErrAlreadyRated,
		},
		{
			name:      "no existing rating clears the insert",
			lookupErr: gorm.ErrRecordNotFound,
			want:      nil,
		},
		{
			name:      "lookup failure propagates",
			lookupErr: lookupFailure,
			want:      lookupFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := duplicateRatingOutcome(tt.lookupErr)
			if !errors.Is(got, tt.want) {
				t.Errorf("duplicateRatingOutcome(%v) = %v, want %v", tt.lookupErr, got, tt.want)
			}
		})
	}
}

func TestContentIsPremium(t *testing.T) {
	free := Content{}
	if free.IsPremium() {
		t.Error("content without a category should not be premium")
	}

	open := Content{Category: &category.Category{IsPremium: false}}
	if open.IsPremium() {
		t.Error("content in a free category should not be premium")
	}

	gated := Content{Category: &category.Category{IsPremium: true}}
	if !gated.IsPremium() {
		t.Error("content in a premium category should be premium")
	}
}
