package firestore

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type causeDocument struct {
	ID            string    `firestore:"id"`
	FailureModeID string    `firestore:"failure_mode_id"`
	Description   string    `firestore:"description"`
	Occurrence    int       `firestore:"occurrence"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

type causeRepository = childRepository[model.CauseID, model.Cause, causeDocument]

func newCauseRepository(client *firestore.Client, prefix string) *causeRepository {
	return &causeRepository{
		parent: func(c *model.Cause) model.FailureModeID { return c.FailureModeID },
		collection: newCollection(client, prefix, "causes", codec[model.CauseID, model.Cause, causeDocument]{
			name:    "cause",
			newID:   model.NewCauseID,
			id:      func(c *model.Cause) model.CauseID { return c.ID },
			created: func(c *model.Cause) time.Time { return c.CreatedAt },
			toDoc: func(c *model.Cause) *causeDocument {
				return &causeDocument{
					ID:            string(c.ID),
					FailureModeID: string(c.FailureModeID),
					Description:   c.Description,
					Occurrence:    c.Occurrence,
					CreatedAt:     c.CreatedAt,
					UpdatedAt:     c.UpdatedAt,
				}
			},
			fromDoc: func(d *causeDocument) *model.Cause {
				return &model.Cause{
					ID:            model.CauseID(d.ID),
					FailureModeID: model.FailureModeID(d.FailureModeID),
					Description:   d.Description,
					Occurrence:    d.Occurrence,
					CreatedAt:     d.CreatedAt,
					UpdatedAt:     d.UpdatedAt,
				}
			},
			touch: func(c *model.Cause, id model.CauseID, createdAt, updatedAt time.Time) {
				c.ID, c.CreatedAt, c.UpdatedAt = id, createdAt, updatedAt
			},
			freeze: func(updated, existing *model.Cause) {
				updated.FailureModeID = existing.FailureModeID
			},
		}),
	}
}
