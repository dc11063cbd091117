package memory

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type causeRepository = childRepository[model.CauseID, model.Cause]

func newCauseRepository(s *store) *causeRepository {
	return newChildRepository(s, childKind[model.CauseID, model.Cause]{
		name:    "cause",
		newID:   model.NewCauseID,
		id:      func(c *model.Cause) model.CauseID { return c.ID },
		parent:  func(c *model.Cause) model.FailureModeID { return c.FailureModeID },
		created: func(c *model.Cause) time.Time { return c.CreatedAt },
		copy: func(c *model.Cause) *model.Cause {
			copied := *c
			return &copied
		},
		stamp: func(c *model.Cause, id model.CauseID, parent model.FailureModeID, createdAt, updatedAt time.Time) {
			c.ID, c.FailureModeID, c.CreatedAt, c.UpdatedAt = id, parent, createdAt, updatedAt
		},
	})
}
