package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// FailureModeRepository defines the interface for FailureMode data access
type FailureModeRepository interface {
	// Create stores a new failure mode. ID is generated when empty.
	Create(ctx context.Context, fm *model.FailureMode) (*model.FailureMode, error)

	Get(ctx context.Context, id model.FailureModeID) (*model.FailureMode, error)

	// ListByComponent returns failure modes of a component ordered by creation time
	ListByComponent(ctx context.Context, componentID model.ComponentID) ([]*model.FailureMode, error)

	// ListByComponents retrieves failure modes for multiple components (for batch operations)
	// Returns a map of component ID to list of failure modes
	ListByComponents(ctx context.Context, componentIDs []model.ComponentID) (map[model.ComponentID][]*model.FailureMode, error)

	Update(ctx context.Context, fm *model.FailureMode) (*model.FailureMode, error)

	Delete(ctx context.Context, id model.FailureModeID) error
}
