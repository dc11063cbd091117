package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type bandDocument struct {
	Label string `firestore:"label"`
	Min   int    `firestore:"min"`
	Max   int    `firestore:"max"`
	Color string `firestore:"color"`
}

type settingsDocument struct {
	RatingScale     int            `firestore:"rating_scale"`
	Bands           []bandDocument `firestore:"bands"`
	DashboardMedium int            `firestore:"dashboard_medium"`
	DashboardHigh   int            `firestore:"dashboard_high"`
	DashboardCrit   int            `firestore:"dashboard_critical"`
}

type projectDocument struct {
	ID          string           `firestore:"id"`
	Name        string           `firestore:"name"`
	Description string           `firestore:"description"`
	Settings    settingsDocument `firestore:"settings"`
	CreatedAt   time.Time        `firestore:"created_at"`
	UpdatedAt   time.Time        `firestore:"updated_at"`
}

func projectToDoc(p *model.Project) *projectDocument {
	bands := make([]bandDocument, 0, len(p.Settings.Bands))
	for _, b := range p.Settings.Bands {
		bands = append(bands, bandDocument(b))
	}
	return &projectDocument{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Settings: settingsDocument{
			RatingScale:     int(p.Settings.RatingScale),
			Bands:           bands,
			DashboardMedium: p.Settings.Dashboard.Medium,
			DashboardHigh:   p.Settings.Dashboard.High,
			DashboardCrit:   p.Settings.Dashboard.Critical,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func projectFromDoc(d *projectDocument) *model.Project {
	bands := make([]model.Band, 0, len(d.Settings.Bands))
	for _, b := range d.Settings.Bands {
		bands = append(bands, model.Band(b))
	}
	return &model.Project{
		ID:          model.ProjectID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Settings: model.Settings{
			RatingScale: types.RatingScale(d.Settings.RatingScale),
			Bands:       bands,
			Dashboard: model.DashboardCutoffs{
				Medium:   d.Settings.DashboardMedium,
				High:     d.Settings.DashboardHigh,
				Critical: d.Settings.DashboardCrit,
			},
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type projectRepository struct {
	*collection[model.ProjectID, model.Project, projectDocument]
}

func newProjectRepository(client *firestore.Client, prefix string) *projectRepository {
	return &projectRepository{
		collection: newCollection(client, prefix, "projects", codec[model.ProjectID, model.Project, projectDocument]{
			name:    "project",
			newID:   model.NewProjectID,
			id:      func(p *model.Project) model.ProjectID { return p.ID },
			created: func(p *model.Project) time.Time { return p.CreatedAt },
			toDoc:   projectToDoc,
			fromDoc: projectFromDoc,
			touch: func(p *model.Project, id model.ProjectID, createdAt, updatedAt time.Time) {
				p.ID, p.CreatedAt, p.UpdatedAt = id, createdAt, updatedAt
			},
		}),
	}
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := r.query(ctx, r.client.Collection(r.path).OrderBy(fieldCreatedAt, firestore.Asc))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	return projects, nil
}
