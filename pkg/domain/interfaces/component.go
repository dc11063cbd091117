package interfaces

import (
	"context"

	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// ComponentRepository defines the interface for Component data access
type ComponentRepository interface {
	// Create stores a new component. ID is generated when empty.
	Create(ctx context.Context, component *model.Component) (*model.Component, error)

	Get(ctx context.Context, id model.ComponentID) (*model.Component, error)

	// ListByProject returns components of a project ordered by creation time
	ListByProject(ctx context.Context, projectID model.ProjectID) ([]*model.Component, error)

	Update(ctx context.Context, component *model.Component) (*model.Component, error)

	Delete(ctx context.Context, id model.ComponentID) error
}
