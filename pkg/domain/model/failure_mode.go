package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// FailureModeID is a UUID-based identifier for FailureMode
type FailureModeID string

// NewFailureModeID generates a new UUID v4 FailureModeID
func NewFailureModeID() FailureModeID {
	return FailureModeID(uuid.New().String())
}

// FailureMode is one way a component can fail to perform its function
type FailureMode struct {
	ID          FailureModeID
	ComponentID ComponentID
	Description string
	ProcessStep string
	Status      types.FailureModeStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FailureModeChildren bundles everything owned by a failure mode
type FailureModeChildren struct {
	Causes   []*Cause
	Effects  []*Effect
	Controls []*Control
	Actions  []*Action
}
