package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type failureModeRepository struct {
	*store
	failureModes *table[model.FailureModeID, *model.FailureMode]
}

func newFailureModeRepository(s *store) *failureModeRepository {
	return &failureModeRepository{
		store:        s,
		failureModes: newTable[model.FailureModeID, *model.FailureMode](),
	}
}

func copyFailureMode(fm *model.FailureMode) *model.FailureMode {
	copied := *fm
	return &copied
}

func (r *failureModeRepository) Create(ctx context.Context, fm *model.FailureMode) (*model.FailureMode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyFailureMode(fm)
	if created.ID == "" {
		created.ID = model.NewFailureModeID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.failureModes.put(created.ID, created)
	r.changed()
	return copyFailureMode(created), nil
}

func (r *failureModeRepository) Get(ctx context.Context, id model.FailureModeID) (*model.FailureMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fm, exists := r.failureModes.get(id)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "failure mode not found", goerr.V("id", id))
	}
	return copyFailureMode(fm), nil
}

func (r *failureModeRepository) ListByComponent(ctx context.Context, componentID model.ComponentID) ([]*model.FailureMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.failureModes.values(func(fm *model.FailureMode) bool {
		return fm.ComponentID == componentID
	})
	failureModes := make([]*model.FailureMode, 0, len(rows))
	for _, fm := range rows {
		failureModes = append(failureModes, copyFailureMode(fm))
	}
	return failureModes, nil
}

func (r *failureModeRepository) ListByComponents(ctx context.Context, componentIDs []model.ComponentID) (map[model.ComponentID][]*model.FailureMode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[model.ComponentID]bool, len(componentIDs))
	for _, id := range componentIDs {
		wanted[id] = true
	}

	result := make(map[model.ComponentID][]*model.FailureMode)
	for _, fm := range r.failureModes.values(func(fm *model.FailureMode) bool { return wanted[fm.ComponentID] }) {
		result[fm.ComponentID] = append(result[fm.ComponentID], copyFailureMode(fm))
	}
	return result, nil
}

func (r *failureModeRepository) Update(ctx context.Context, fm *model.FailureMode) (*model.FailureMode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.failureModes.get(fm.ID)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "failure mode not found", goerr.V("id", fm.ID))
	}

	updated := copyFailureMode(fm)
	updated.ComponentID = existing.ComponentID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.failureModes.put(updated.ID, updated)
	r.changed()
	return copyFailureMode(updated), nil
}

func (r *failureModeRepository) Delete(ctx context.Context, id model.FailureModeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.failureModes.remove(id) {
		return goerr.Wrap(ErrNotFound, "failure mode not found", goerr.V("id", id))
	}
	r.changed()
	return nil
}
