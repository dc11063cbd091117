package types

import "github.com/m-mizutani/goerr/v2"

// FailureModeStatus represents the review state of a failure mode
type FailureModeStatus string

const (
	FailureModeStatusActive FailureModeStatus = "active"
	FailureModeStatusClosed FailureModeStatus = "closed"
	FailureModeStatusOnHold FailureModeStatus = "on-hold"
)

// AllFailureModeStatuses returns all valid failure mode statuses
func AllFailureModeStatuses() []FailureModeStatus {
	return []FailureModeStatus{
		FailureModeStatusActive,
		FailureModeStatusClosed,
		FailureModeStatusOnHold,
	}
}

// IsValid checks if the failure mode status is valid
func (s FailureModeStatus) IsValid() bool {
	switch s {
	case FailureModeStatusActive,
		FailureModeStatusClosed,
		FailureModeStatusOnHold:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as FailureModeStatusActive.
func (s FailureModeStatus) Normalize() FailureModeStatus {
	if s == "" {
		return FailureModeStatusActive
	}
	return s
}

// String returns the string representation of the failure mode status
func (s FailureModeStatus) String() string {
	return string(s)
}

// ParseFailureModeStatus parses a string into a FailureModeStatus
func ParseFailureModeStatus(s string) (FailureModeStatus, error) {
	status := FailureModeStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid failure mode status", goerr.V("status", s))
	}
	return status, nil
}
