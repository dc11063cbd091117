package memory

import (
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// Snapshot is a point-in-time copy of every entity, in insertion order
type Snapshot struct {
	Projects     []*model.Project
	Components   []*model.Component
	FailureModes []*model.FailureMode
	Causes       []*model.Cause
	Effects      []*model.Effect
	Controls     []*model.Control
	Actions      []*model.Action
}

// Snapshot copies the whole store under a single read lock
func (m *Memory) Snapshot() *Snapshot {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()

	return &Snapshot{
		Projects:     copyAll(m.project.projects.values(nil), copyProject),
		Components:   copyAll(m.component.components.values(nil), copyComponent),
		FailureModes: copyAll(m.failureMode.failureModes.values(nil), copyFailureMode),
		Causes:       copyAll(m.cause.rows.values(nil), m.cause.kind.copy),
		Effects:      copyAll(m.effect.rows.values(nil), m.effect.kind.copy),
		Controls:     copyAll(m.control.rows.values(nil), m.control.kind.copy),
		Actions:      copyAll(m.action.rows.values(nil), m.action.kind.copy),
	}
}

// Restore replaces the whole store with snap. IDs and timestamps are kept as
// they are. The change hook is not called.
func (m *Memory) Restore(snap *Snapshot) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	m.project.projects.reset()
	for _, p := range snap.Projects {
		m.project.projects.put(p.ID, copyProject(p))
	}
	m.component.components.reset()
	for _, c := range snap.Components {
		m.component.components.put(c.ID, copyComponent(c))
	}
	m.failureMode.failureModes.reset()
	for _, fm := range snap.FailureModes {
		m.failureMode.failureModes.put(fm.ID, copyFailureMode(fm))
	}
	restoreChildren(m.cause, snap.Causes)
	restoreChildren(m.effect, snap.Effects)
	restoreChildren(m.control, snap.Controls)
	restoreChildren(m.action, snap.Actions)
}

func restoreChildren[K ~string, T any](r *childRepository[K, T], rows []*T) {
	r.rows.reset()
	for _, v := range rows {
		r.rows.put(r.kind.id(v), r.kind.copy(v))
	}
}

func copyAll[T any](rows []*T, copyFn func(*T) *T) []*T {
	out := make([]*T, 0, len(rows))
	for _, v := range rows {
		out = append(out, copyFn(v))
	}
	return out
}
