package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type componentDocument struct {
	ID        string    `firestore:"id"`
	ProjectID string    `firestore:"project_id"`
	Name      string    `firestore:"name"`
	Function  string    `firestore:"function"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type componentRepository struct {
	*collection[model.ComponentID, model.Component, componentDocument]
}

func newComponentRepository(client *firestore.Client, prefix string) *componentRepository {
	return &componentRepository{
		collection: newCollection(client, prefix, "components", codec[model.ComponentID, model.Component, componentDocument]{
			name:    "component",
			newID:   model.NewComponentID,
			id:      func(c *model.Component) model.ComponentID { return c.ID },
			created: func(c *model.Component) time.Time { return c.CreatedAt },
			toDoc: func(c *model.Component) *componentDocument {
				return &componentDocument{
					ID:        string(c.ID),
					ProjectID: string(c.ProjectID),
					Name:      c.Name,
					Function:  c.Function,
					CreatedAt: c.CreatedAt,
					UpdatedAt: c.UpdatedAt,
				}
			},
			fromDoc: func(d *componentDocument) *model.Component {
				return &model.Component{
					ID:        model.ComponentID(d.ID),
					ProjectID: model.ProjectID(d.ProjectID),
					Name:      d.Name,
					Function:  d.Function,
					CreatedAt: d.CreatedAt,
					UpdatedAt: d.UpdatedAt,
				}
			},
			touch: func(c *model.Component, id model.ComponentID, createdAt, updatedAt time.Time) {
				c.ID, c.CreatedAt, c.UpdatedAt = id, createdAt, updatedAt
			},
			freeze: func(updated, existing *model.Component) {
				updated.ProjectID = existing.ProjectID
			},
		}),
	}
}

func (r *componentRepository) ListByProject(ctx context.Context, projectID model.ProjectID) ([]*model.Component, error) {
	return r.listByParent(ctx, fieldProjectID, string(projectID))
}
