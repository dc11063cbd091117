package model

import (
	"time"

	"github.com/google/uuid"
)

// ComponentID is a UUID-based identifier for Component
type ComponentID string

// NewComponentID generates a new UUID v4 ComponentID
func NewComponentID() ComponentID {
	return ComponentID(uuid.New().String())
}

// Component is an item or process step under analysis
type Component struct {
	ID        ComponentID
	ProjectID ProjectID
	Name      string
	Function  string // What the component is supposed to do
	CreatedAt time.Time
	UpdatedAt time.Time
}
