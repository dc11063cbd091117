package model

import (
	"time"

	"github.com/google/uuid"
)

// EffectID is a UUID-based identifier for Effect
type EffectID string

// NewEffectID generates a new UUID v4 EffectID
func NewEffectID() EffectID {
	return EffectID(uuid.New().String())
}

// Effect is a consequence of a failure mode.
// The *Post ratings describe the residual risk once mitigation is in place and
// are nil until assessed.
type Effect struct {
	ID                EffectID
	FailureModeID     FailureModeID
	Description       string
	Severity          int
	SeverityPost      *int
	OccurrencePost    *int
	DetectionPost     *int
	JustificationPre  string
	JustificationPost string
	ActionTaken       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Clone returns a deep copy of the effect
func (e *Effect) Clone() *Effect {
	copied := *e
	copied.SeverityPost = cloneInt(e.SeverityPost)
	copied.OccurrencePost = cloneInt(e.OccurrencePost)
	copied.DetectionPost = cloneInt(e.DetectionPost)
	return &copied
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
