package firestore

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type actionDocument struct {
	ID            string     `firestore:"id"`
	FailureModeID string     `firestore:"failure_mode_id"`
	Description   string     `firestore:"description"`
	Owner         string     `firestore:"owner"`
	DueDate       *time.Time `firestore:"due_date"`
	Status        string     `firestore:"status"`
	CreatedAt     time.Time  `firestore:"created_at"`
	UpdatedAt     time.Time  `firestore:"updated_at"`
}

type actionRepository = childRepository[model.ActionID, model.Action, actionDocument]

func newActionRepository(client *firestore.Client, prefix string) *actionRepository {
	return &actionRepository{
		parent: func(a *model.Action) model.FailureModeID { return a.FailureModeID },
		collection: newCollection(client, prefix, "actions", codec[model.ActionID, model.Action, actionDocument]{
			name:    "action",
			newID:   model.NewActionID,
			id:      func(a *model.Action) model.ActionID { return a.ID },
			created: func(a *model.Action) time.Time { return a.CreatedAt },
			toDoc: func(a *model.Action) *actionDocument {
				c := a.Clone()
				return &actionDocument{
					ID:            string(c.ID),
					FailureModeID: string(c.FailureModeID),
					Description:   c.Description,
					Owner:         c.Owner,
					DueDate:       c.DueDate,
					Status:        c.Status.String(),
					CreatedAt:     c.CreatedAt,
					UpdatedAt:     c.UpdatedAt,
				}
			},
			fromDoc: func(d *actionDocument) *model.Action {
				a := &model.Action{
					ID:            model.ActionID(d.ID),
					FailureModeID: model.FailureModeID(d.FailureModeID),
					Description:   d.Description,
					Owner:         d.Owner,
					DueDate:       d.DueDate,
					Status:        types.ActionStatus(d.Status),
					CreatedAt:     d.CreatedAt,
					UpdatedAt:     d.UpdatedAt,
				}
				return a.Clone()
			},
			touch: func(a *model.Action, id model.ActionID, createdAt, updatedAt time.Time) {
				a.ID, a.CreatedAt, a.UpdatedAt = id, createdAt, updatedAt
			},
			freeze: func(updated, existing *model.Action) {
				updated.FailureModeID = existing.FailureModeID
			},
		}),
	}
}
