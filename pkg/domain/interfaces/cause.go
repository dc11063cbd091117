package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// CauseRepository defines the interface for Cause data access
type CauseRepository interface {
	// Create stores a new cause. ID is generated when empty.
	Create(ctx context.Context, cause *model.Cause) (*model.Cause, error)

	Get(ctx context.Context, id model.CauseID) (*model.Cause, error)

	Update(ctx context.Context, cause *model.Cause) (*model.Cause, error)

	Delete(ctx context.Context, id model.CauseID) error

	// ListByFailureMode returns causes of a failure mode ordered by creation time
	ListByFailureMode(ctx context.Context, failureModeID model.FailureModeID) ([]*model.Cause, error)

	// ListByFailureModes retrieves causes for multiple failure modes (for batch operations)
	// Returns a map of failure mode ID to list of causes
	ListByFailureModes(ctx context.Context, failureModeIDs []model.FailureModeID) (map[model.FailureModeID][]*model.Cause, error)

	// DeleteByFailureMode removes every cause of a failure mode
	DeleteByFailureMode(ctx context.Context, failureModeID model.FailureModeID) error
}
