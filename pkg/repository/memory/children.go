package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// childKind describes an entity owned by a failure mode
type childKind[K ~string, T any] struct {
	name    string
	newID   func() K
	id      func(*T) K
	parent  func(*T) model.FailureModeID
	created func(*T) time.Time
	copy    func(*T) *T
	// stamp sets the fields the repository owns
	stamp func(v *T, id K, parent model.FailureModeID, createdAt, updatedAt time.Time)
}

// childRepository stores causes, effects, controls and actions
type childRepository[K ~string, T any] struct {
	*store
	kind childKind[K, T]
	rows *table[K, *T]
}

func newChildRepository[K ~string, T any](s *store, kind childKind[K, T]) *childRepository[K, T] {
	return &childRepository[K, T]{
		store: s,
		kind:  kind,
		rows:  newTable[K, *T](),
	}
}

func (r *childRepository[K, T]) Create(ctx context.Context, v *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := r.kind.copy(v)
	id := r.kind.id(created)
	if id == "" {
		id = r.kind.newID()
	}
	r.kind.stamp(created, id, r.kind.parent(created), now, now)

	r.rows.put(id, created)
	r.changed()
	return r.kind.copy(created), nil
}

func (r *childRepository[K, T]) Get(ctx context.Context, id K) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, exists := r.rows.get(id)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, r.kind.name+" not found", goerr.V("id", id))
	}
	return r.kind.copy(v), nil
}

func (r *childRepository[K, T]) Update(ctx context.Context, v *T) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.kind.id(v)
	existing, exists := r.rows.get(id)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, r.kind.name+" not found", goerr.V("id", id))
	}

	updated := r.kind.copy(v)
	r.kind.stamp(updated, id, r.kind.parent(existing), r.kind.created(existing), time.Now().UTC())

	r.rows.put(id, updated)
	r.changed()
	return r.kind.copy(updated), nil
}

func (r *childRepository[K, T]) Delete(ctx context.Context, id K) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.rows.remove(id) {
		return goerr.Wrap(ErrNotFound, r.kind.name+" not found", goerr.V("id", id))
	}
	r.changed()
	return nil
}

func (r *childRepository[K, T]) ListByFailureMode(ctx context.Context, failureModeID model.FailureModeID) ([]*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rows.values(func(v *T) bool {
		return r.kind.parent(v) == failureModeID
	})
	out := make([]*T, 0, len(rows))
	for _, v := range rows {
		out = append(out, r.kind.copy(v))
	}
	return out, nil
}

func (r *childRepository[K, T]) ListByFailureModes(ctx context.Context, failureModeIDs []model.FailureModeID) (map[model.FailureModeID][]*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[model.FailureModeID]bool, len(failureModeIDs))
	for _, id := range failureModeIDs {
		wanted[id] = true
	}

	result := make(map[model.FailureModeID][]*T)
	for _, v := range r.rows.values(func(v *T) bool { return wanted[r.kind.parent(v)] }) {
		parent := r.kind.parent(v)
		result[parent] = append(result[parent], r.kind.copy(v))
	}
	return result, nil
}

func (r *childRepository[K, T]) DeleteByFailureMode(ctx context.Context, failureModeID model.FailureModeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.rows.removeWhere(func(v *T) bool {
		return r.kind.parent(v) == failureModeID
	})
	if removed > 0 {
		r.changed()
	}
	return nil
}
