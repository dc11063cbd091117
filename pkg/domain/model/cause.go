package model

import (
	"time"

	"github.com/google/uuid"
)

// CauseID is a UUID-based identifier for Cause
type CauseID string

// NewCauseID generates a new UUID v4 CauseID
func NewCauseID() CauseID {
	return CauseID(uuid.New().String())
}

// Cause is a reason a failure mode occurs
type Cause struct {
	ID            CauseID
	FailureModeID FailureModeID
	Description   string
	Occurrence    int // Likelihood rating
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
