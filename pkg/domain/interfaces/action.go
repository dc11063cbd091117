package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// ActionRepository defines the interface for Action data access
type ActionRepository interface {
	// Create stores a new action. ID is generated when empty.
	Create(ctx context.Context, action *model.Action) (*model.Action, error)

	Get(ctx context.Context, id model.ActionID) (*model.Action, error)

	Update(ctx context.Context, action *model.Action) (*model.Action, error)

	Delete(ctx context.Context, id model.ActionID) error

	// ListByFailureMode returns actions of a failure mode ordered by creation time
	ListByFailureMode(ctx context.Context, failureModeID model.FailureModeID) ([]*model.Action, error)

	// ListByFailureModes retrieves actions for multiple failure modes (for batch operations)
	// Returns a map of failure mode ID to list of actions
	ListByFailureModes(ctx context.Context, failureModeIDs []model.FailureModeID) (map[model.FailureModeID][]*model.Action, error)

	// DeleteByFailureMode removes every action of a failure mode
	DeleteByFailureMode(ctx context.Context, failureModeID model.FailureModeID) error
}
