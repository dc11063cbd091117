package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type failureModeDocument struct {
	ID          string    `firestore:"id"`
	ComponentID string    `firestore:"component_id"`
	Description string    `firestore:"description"`
	ProcessStep string    `firestore:"process_step"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

type failureModeRepository struct {
	*collection[model.FailureModeID, model.FailureMode, failureModeDocument]
}

func newFailureModeRepository(client *firestore.Client, prefix string) *failureModeRepository {
	return &failureModeRepository{
		collection: newCollection(client, prefix, "failure_modes", codec[model.FailureModeID, model.FailureMode, failureModeDocument]{
			name:    "failure mode",
			newID:   model.NewFailureModeID,
			id:      func(fm *model.FailureMode) model.FailureModeID { return fm.ID },
			created: func(fm *model.FailureMode) time.Time { return fm.CreatedAt },
			toDoc: func(fm *model.FailureMode) *failureModeDocument {
				return &failureModeDocument{
					ID:          string(fm.ID),
					ComponentID: string(fm.ComponentID),
					Description: fm.Description,
					ProcessStep: fm.ProcessStep,
					Status:      fm.Status.String(),
					CreatedAt:   fm.CreatedAt,
					UpdatedAt:   fm.UpdatedAt,
				}
			},
			fromDoc: func(d *failureModeDocument) *model.FailureMode {
				return &model.FailureMode{
					ID:          model.FailureModeID(d.ID),
					ComponentID: model.ComponentID(d.ComponentID),
					Description: d.Description,
					ProcessStep: d.ProcessStep,
					Status:      types.FailureModeStatus(d.Status),
					CreatedAt:   d.CreatedAt,
					UpdatedAt:   d.UpdatedAt,
				}
			},
			touch: func(fm *model.FailureMode, id model.FailureModeID, createdAt, updatedAt time.Time) {
				fm.ID, fm.CreatedAt, fm.UpdatedAt = id, createdAt, updatedAt
			},
			freeze: func(updated, existing *model.FailureMode) {
				updated.ComponentID = existing.ComponentID
			},
		}),
	}
}

func (r *failureModeRepository) ListByComponent(ctx context.Context, componentID model.ComponentID) ([]*model.FailureMode, error) {
	return r.listByParent(ctx, fieldComponentID, string(componentID))
}

func (r *failureModeRepository) ListByComponents(ctx context.Context, componentIDs []model.ComponentID) (map[model.ComponentID][]*model.FailureMode, error) {
	return listByParents(ctx, r.collection, fieldComponentID, componentIDs, func(fm *model.FailureMode) model.ComponentID {
		return fm.ComponentID
	})
}
