package types

import "github.com/m-mizutani/goerr/v2"

// ActionStatus represents the status of a mitigation action
type ActionStatus string

const (
	ActionStatusOpen       ActionStatus = "open"
	ActionStatusInProgress ActionStatus = "in-progress"
	ActionStatusCompleted  ActionStatus = "completed"
	ActionStatusCancelled  ActionStatus = "cancelled"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusOpen,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusCancelled,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusOpen,
		ActionStatusInProgress,
		ActionStatusCompleted,
		ActionStatusCancelled:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ActionStatusOpen.
func (s ActionStatus) Normalize() ActionStatus {
	if s == "" {
		return ActionStatusOpen
	}
	return s
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid action status", goerr.V("status", s))
	}
	return status, nil
}
