package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// ProjectRepository defines the interface for Project data access
type ProjectRepository interface {
	// Create stores a new project. ID is generated when empty.
	Create(ctx context.Context, project *model.Project) (*model.Project, error)

	Get(ctx context.Context, id model.ProjectID) (*model.Project, error)

	// List returns all projects ordered by creation time
	List(ctx context.Context) ([]*model.Project, error)

	Update(ctx context.Context, project *model.Project) (*model.Project, error)

	Delete(ctx context.Context, id model.ProjectID) error
}
