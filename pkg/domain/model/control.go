package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// ControlID is a UUID-based identifier for Control
type ControlID string

// NewControlID generates a new UUID v4 ControlID
func NewControlID() ControlID {
	return ControlID(uuid.New().String())
}

// Control is an existing measure that prevents a cause or detects a failure
type Control struct {
	ID            ControlID
	FailureModeID FailureModeID
	Type          types.ControlType
	Description   string
	Detection     int // Ability to catch the failure before impact; higher is worse
	Effectiveness int // Optional rating, 0 when not assessed
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
