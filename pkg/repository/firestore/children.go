package firestore

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// childRepository stores an entity owned by a failure mode
type childRepository[K ~string, M any, D any] struct {
	*collection[K, M, D]
	parent func(*M) model.FailureModeID
}

func (r *childRepository[K, M, D]) ListByFailureMode(ctx context.Context, failureModeID model.FailureModeID) ([]*M, error) {
	return r.listByParent(ctx, fieldFailureModeID, string(failureModeID))
}

func (r *childRepository[K, M, D]) ListByFailureModes(ctx context.Context, failureModeIDs []model.FailureModeID) (map[model.FailureModeID][]*M, error) {
	return listByParents(ctx, r.collection, fieldFailureModeID, failureModeIDs, r.parent)
}

func (r *childRepository[K, M, D]) DeleteByFailureMode(ctx context.Context, failureModeID model.FailureModeID) error {
	return r.deleteByParent(ctx, fieldFailureModeID, string(failureModeID))
}
