package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// EffectRepository defines the interface for Effect data access
type EffectRepository interface {
	// Create stores a new effect. ID is generated when empty.
	Create(ctx context.Context, effect *model.Effect) (*model.Effect, error)

	Get(ctx context.Context, id model.EffectID) (*model.Effect, error)

	Update(ctx context.Context, effect *model.Effect) (*model.Effect, error)

	Delete(ctx context.Context, id model.EffectID) error

	// ListByFailureMode returns effects of a failure mode ordered by creation time
	ListByFailureMode(ctx context.Context, failureModeID model.FailureModeID) ([]*model.Effect, error)

	// ListByFailureModes retrieves effects for multiple failure modes (for batch operations)
	// Returns a map of failure mode ID to list of effects
	ListByFailureModes(ctx context.Context, failureModeIDs []model.FailureModeID) (map[model.FailureModeID][]*model.Effect, error)

	// DeleteByFailureMode removes every effect of a failure mode
	DeleteByFailureMode(ctx context.Context, failureModeID model.FailureModeID) error
}
