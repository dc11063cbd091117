package memory

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type actionRepository = childRepository[model.ActionID, model.Action]

func newActionRepository(s *store) *actionRepository {
	return newChildRepository(s, childKind[model.ActionID, model.Action]{
		name:    "action",
		newID:   model.NewActionID,
		id:      func(a *model.Action) model.ActionID { return a.ID },
		parent:  func(a *model.Action) model.FailureModeID { return a.FailureModeID },
		created: func(a *model.Action) time.Time { return a.CreatedAt },
		copy:    (*model.Action).Clone,
		stamp: func(a *model.Action, id model.ActionID, parent model.FailureModeID, createdAt, updatedAt time.Time) {
			a.ID, a.FailureModeID, a.CreatedAt, a.UpdatedAt = id, parent, createdAt, updatedAt
		},
	})
}
