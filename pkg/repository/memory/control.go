package memory

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type controlRepository = childRepository[model.ControlID, model.Control]

func newControlRepository(s *store) *controlRepository {
	return newChildRepository(s, childKind[model.ControlID, model.Control]{
		name:    "control",
		newID:   model.NewControlID,
		id:      func(c *model.Control) model.ControlID { return c.ID },
		parent:  func(c *model.Control) model.FailureModeID { return c.FailureModeID },
		created: func(c *model.Control) time.Time { return c.CreatedAt },
		copy: func(c *model.Control) *model.Control {
			copied := *c
			return &copied
		},
		stamp: func(c *model.Control, id model.ControlID, parent model.FailureModeID, createdAt, updatedAt time.Time) {
			c.ID, c.FailureModeID, c.CreatedAt, c.UpdatedAt = id, parent, createdAt, updatedAt
		},
	})
}
