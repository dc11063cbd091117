package model

import "github.com/secmon-lab/fmea/pkg/domain/types"

// Suggestion is a candidate value for a form field proposed by the AI assistant
type Suggestion struct {
	Text       string
	Confidence float64 // 0.0 - 1.0
	Reasoning  string
	Rating     int // 0 when the kind carries no rating
}

// SuggestionContext is what the assistant knows about the entity being edited
type SuggestionContext struct {
	Kind              types.SuggestionKind
	ProjectName       string
	ComponentName     string
	ComponentFunction string
	FailureMode       string
	ProcessStep       string
	ExistingCauses    []string
	ExistingEffects   []string
	ExistingControls  []string
	ExistingActions   []string
	Hint              string
	RatingScale       types.RatingScale
	MaxSuggestions    int
}
