package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// ActionID is a UUID-based identifier for Action
type ActionID string

// NewActionID generates a new UUID v4 ActionID
func NewActionID() ActionID {
	return ActionID(uuid.New().String())
}

// Action is a recommended mitigation task for a failure mode
type Action struct {
	ID            ActionID
	FailureModeID FailureModeID
	Description   string
	Owner         string
	DueDate       *time.Time
	Status        types.ActionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone returns a deep copy of the action
func (a *Action) Clone() *Action {
	copied := *a
	if a.DueDate != nil {
		d := *a.DueDate
		copied.DueDate = &d
	}
	return &copied
}
