package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// ControlRepository defines the interface for Control data access
type ControlRepository interface {
	// Create stores a new control. ID is generated when empty.
	Create(ctx context.Context, control *model.Control) (*model.Control, error)

	Get(ctx context.Context, id model.ControlID) (*model.Control, error)

	Update(ctx context.Context, control *model.Control) (*model.Control, error)

	Delete(ctx context.Context, id model.ControlID) error

	// ListByFailureMode returns controls of a failure mode ordered by creation time
	ListByFailureMode(ctx context.Context, failureModeID model.FailureModeID) ([]*model.Control, error)

	// ListByFailureModes retrieves controls for multiple failure modes (for batch operations)
	// Returns a map of failure mode ID to list of controls
	ListByFailureModes(ctx context.Context, failureModeIDs []model.FailureModeID) (map[model.FailureModeID][]*model.Control, error)

	// DeleteByFailureMode removes every control of a failure mode
	DeleteByFailureMode(ctx context.Context, failureModeID model.FailureModeID) error
}
