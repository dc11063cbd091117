package memory

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type effectRepository = childRepository[model.EffectID, model.Effect]

func newEffectRepository(s *store) *effectRepository {
	return newChildRepository(s, childKind[model.EffectID, model.Effect]{
		name:    "effect",
		newID:   model.NewEffectID,
		id:      func(e *model.Effect) model.EffectID { return e.ID },
		parent:  func(e *model.Effect) model.FailureModeID { return e.FailureModeID },
		created: func(e *model.Effect) time.Time { return e.CreatedAt },
		copy:    (*model.Effect).Clone,
		stamp: func(e *model.Effect, id model.EffectID, parent model.FailureModeID, createdAt, updatedAt time.Time) {
			e.ID, e.FailureModeID, e.CreatedAt, e.UpdatedAt = id, parent, createdAt, updatedAt
		},
	})
}
