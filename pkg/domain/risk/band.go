package risk

import (
	"fmt"
	"sort"

	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// ClassifyBand returns the first band containing rpn. When no band matches, the
// last band is returned. An empty band list yields the zero Band.
func ClassifyBand(rpn int, bands []model.Band) model.Band {
	if len(bands) == 0 {
		return model.Band{}
	}
	for _, b := range bands {
		if b.Contains(rpn) {
			return b
		}
	}
	return bands[len(bands)-1]
}

// ValidateBands checks that bands are contiguous, non-overlapping, start at 1
// and cover the maximum RPN of the scale. It returns one message per problem;
// an empty result means the bands are valid.
func ValidateBands(bands []model.Band, scale types.RatingScale) []string {
	var messages []string

	if !scale.IsValid() {
		messages = append(messages, fmt.Sprintf("rating scale must be %d or %d, got %d", types.RatingScale5, types.RatingScale10, scale))
		scale = types.DefaultRatingScale
	}

	if len(bands) == 0 {
		return append(messages, "at least one band is required")
	}

	labels := make(map[string]bool, len(bands))
	for i, b := range bands {
		if b.Label == "" {
			messages = append(messages, fmt.Sprintf("band #%d has no label", i+1))
		} else if labels[b.Label] {
			messages = append(messages, fmt.Sprintf("band label %q is used more than once", b.Label))
		}
		labels[b.Label] = true

		if b.Min > b.Max {
			messages = append(messages, fmt.Sprintf("band %q has min %d greater than max %d", b.Label, b.Min, b.Max))
		}
	}

	sorted := make([]model.Band, len(bands))
	copy(sorted, bands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Min < sorted[j].Min
	})

	if sorted[0].Min != 1 {
		messages = append(messages, fmt.Sprintf("lowest band %q must start at 1, starts at %d", sorted[0].Label, sorted[0].Min))
	}

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		switch {
		case cur.Min <= prev.Max:
			messages = append(messages, fmt.Sprintf("band %q (%d-%d) overlaps band %q (%d-%d)", cur.Label, cur.Min, cur.Max, prev.Label, prev.Min, prev.Max))
		case cur.Min > prev.Max+1:
			messages = append(messages, fmt.Sprintf("gap between band %q (ends at %d) and band %q (starts at %d)", prev.Label, prev.Max, cur.Label, cur.Min))
		}
	}

	highest := sorted[0].Max
	for _, b := range sorted[1:] {
		if b.Max > highest {
			highest = b.Max
		}
	}
	if maxRPN := scale.MaxRPN(); highest < maxRPN {
		messages = append(messages, fmt.Sprintf("bands must cover RPN up to %d, highest band ends at %d", maxRPN, highest))
	}

	return messages
}
