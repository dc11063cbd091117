package firestore

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type controlDocument struct {
	ID            string    `firestore:"id"`
	FailureModeID string    `firestore:"failure_mode_id"`
	Type          string    `firestore:"type"`
	Description   string    `firestore:"description"`
	Detection     int       `firestore:"detection"`
	Effectiveness int       `firestore:"effectiveness"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

type controlRepository = childRepository[model.ControlID, model.Control, controlDocument]

func newControlRepository(client *firestore.Client, prefix string) *controlRepository {
	return &controlRepository{
		parent: func(c *model.Control) model.FailureModeID { return c.FailureModeID },
		collection: newCollection(client, prefix, "controls", codec[model.ControlID, model.Control, controlDocument]{
			name:    "control",
			newID:   model.NewControlID,
			id:      func(c *model.Control) model.ControlID { return c.ID },
			created: func(c *model.Control) time.Time { return c.CreatedAt },
			toDoc: func(c *model.Control) *controlDocument {
				return &controlDocument{
					ID:            string(c.ID),
					FailureModeID: string(c.FailureModeID),
					Type:          c.Type.String(),
					Description:   c.Description,
					Detection:     c.Detection,
					Effectiveness: c.Effectiveness,
					CreatedAt:     c.CreatedAt,
					UpdatedAt:     c.UpdatedAt,
				}
			},
			fromDoc: func(d *controlDocument) *model.Control {
				return &model.Control{
					ID:            model.ControlID(d.ID),
					FailureModeID: model.FailureModeID(d.FailureModeID),
					Type:          types.ControlType(d.Type),
					Description:   d.Description,
					Detection:     d.Detection,
					Effectiveness: d.Effectiveness,
					CreatedAt:     d.CreatedAt,
					UpdatedAt:     d.UpdatedAt,
				}
			},
			touch: func(c *model.Control, id model.ControlID, createdAt, updatedAt time.Time) {
				c.ID, c.CreatedAt, c.UpdatedAt = id, createdAt, updatedAt
			},
			freeze: func(updated, existing *model.Control) {
				updated.FailureModeID = existing.FailureModeID
			},
		}),
	}
}
