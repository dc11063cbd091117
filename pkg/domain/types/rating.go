package types

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidRating is returned for a rating outside the project's scale
var ErrInvalidRating = errors.New("invalid rating")

// RatingScale is the upper bound of the severity/occurrence/detection ratings
// used by a project. The lower bound is always MinRating.
type RatingScale int

const (
	MinRating int = 1

	RatingScale5  RatingScale = 5
	RatingScale10 RatingScale = 10

	DefaultRatingScale = RatingScale10

	// WorstDetection is the detection rating assumed when no control exists.
	WorstDetection = 10
)

// IsValid checks if the rating scale is one of the supported scales
func (s RatingScale) IsValid() bool {
	return s == RatingScale5 || s == RatingScale10
}

// Normalize returns the scale, treating zero as DefaultRatingScale.
func (s RatingScale) Normalize() RatingScale {
	if s == 0 {
		return DefaultRatingScale
	}
	return s
}

// Contains reports whether rating r is inside [MinRating, s]
func (s RatingScale) Contains(r int) bool {
	return r >= MinRating && r <= int(s)
}

// MaxRPN returns the highest RPN a band list has to cover for this scale.
func (s RatingScale) MaxRPN() int {
	n := int(s)
	return n * n * 10
}

// ValidateRating returns ErrInvalidRating when r is outside the scale
func (s RatingScale) ValidateRating(field string, r int) error {
	if !s.Contains(r) {
		return goerr.Wrap(ErrInvalidRating,
			fmt.Sprintf("%s must be between %d and %d", field, MinRating, int(s)),
			goerr.V("field", field),
			goerr.V("value", r),
		)
	}
	return nil
}
