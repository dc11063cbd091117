package types

import "github.com/m-mizutani/goerr/v2"

// SuggestionKind identifies which form field an AI suggestion is meant to fill
type SuggestionKind string

const (
	SuggestionKindFunction    SuggestionKind = "function"
	SuggestionKindFailureMode SuggestionKind = "failure-mode"
	SuggestionKindCause       SuggestionKind = "cause"
	SuggestionKindEffect      SuggestionKind = "effect"
	SuggestionKindControl     SuggestionKind = "control"
	SuggestionKindAction      SuggestionKind = "action"
)

// AllSuggestionKinds returns all valid suggestion kinds
func AllSuggestionKinds() []SuggestionKind {
	return []SuggestionKind{
		SuggestionKindFunction,
		SuggestionKindFailureMode,
		SuggestionKindCause,
		SuggestionKindEffect,
		SuggestionKindControl,
		SuggestionKindAction,
	}
}

// IsValid checks if the suggestion kind is valid
func (k SuggestionKind) IsValid() bool {
	for _, v := range AllSuggestionKinds() {
		if k == v {
			return true
		}
	}
	return false
}

// HasRating reports whether suggestions of this kind carry a rating
// (occurrence for causes, severity for effects, detection for controls).
func (k SuggestionKind) HasRating() bool {
	switch k {
	case SuggestionKindCause, SuggestionKindEffect, SuggestionKindControl:
		return true
	default:
		return false
	}
}

// String returns the string representation of the suggestion kind
func (k SuggestionKind) String() string {
	return string(k)
}

// ParseSuggestionKind parses a string into a SuggestionKind
func ParseSuggestionKind(s string) (SuggestionKind, error) {
	k := SuggestionKind(s)
	if !k.IsValid() {
		return "", goerr.New("invalid suggestion kind", goerr.V("kind", s))
	}
	return k, nil
}
