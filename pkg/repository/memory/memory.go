package memory

import (
	"sync"

	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
)

// store is the state shared by every repository of a Memory. A single lock
// keeps snapshots consistent across entities.
type store struct {
	mu       sync.RWMutex
	onChange func()
}

// changed must be called with mu held for writing
func (s *store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

type Memory struct {
	store       *store
	project     *projectRepository
	component   *componentRepository
	failureMode *failureModeRepository
	cause       *causeRepository
	effect      *effectRepository
	control     *controlRepository
	action      *actionRepository
}

var _ interfaces.Repository = &Memory{}

type Option func(*Memory)

// WithChangeHook registers fn to be called after every successful mutation.
// fn runs while the store lock is held and must not call back into the
// repository; a non-blocking channel send is the intended use.
func WithChangeHook(fn func()) Option {
	return func(m *Memory) {
		m.store.onChange = fn
	}
}

func New(opts ...Option) *Memory {
	s := &store{}
	m := &Memory{
		store:       s,
		project:     newProjectRepository(s),
		component:   newComponentRepository(s),
		failureMode: newFailureModeRepository(s),
		cause:       newCauseRepository(s),
		effect:      newEffectRepository(s),
		control:     newControlRepository(s),
		action:      newActionRepository(s),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Component() interfaces.ComponentRepository {
	return m.component
}

func (m *Memory) FailureMode() interfaces.FailureModeRepository {
	return m.failureMode
}

func (m *Memory) Cause() interfaces.CauseRepository {
	return m.cause
}

func (m *Memory) Effect() interfaces.EffectRepository {
	return m.effect
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) Close() error {
	return nil
}
