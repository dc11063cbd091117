package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type componentRepository struct {
	*store
	components *table[model.ComponentID, *model.Component]
}

func newComponentRepository(s *store) *componentRepository {
	return &componentRepository{
		store:      s,
		components: newTable[model.ComponentID, *model.Component](),
	}
}

func copyComponent(c *model.Component) *model.Component {
	copied := *c
	return &copied
}

func (r *componentRepository) Create(ctx context.Context, component *model.Component) (*model.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyComponent(component)
	if created.ID == "" {
		created.ID = model.NewComponentID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.components.put(created.ID, created)
	r.changed()
	return copyComponent(created), nil
}

func (r *componentRepository) Get(ctx context.Context, id model.ComponentID) (*model.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.components.get(id)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "component not found", goerr.V("id", id))
	}
	return copyComponent(c), nil
}

func (r *componentRepository) ListByProject(ctx context.Context, projectID model.ProjectID) ([]*model.Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.components.values(func(c *model.Component) bool {
		return c.ProjectID == projectID
	})
	components := make([]*model.Component, 0, len(rows))
	for _, c := range rows {
		components = append(components, copyComponent(c))
	}
	return components, nil
}

func (r *componentRepository) Update(ctx context.Context, component *model.Component) (*model.Component, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.components.get(component.ID)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "component not found", goerr.V("id", component.ID))
	}

	updated := copyComponent(component)
	updated.ProjectID = existing.ProjectID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.components.put(updated.ID, updated)
	r.changed()
	return copyComponent(updated), nil
}

func (r *componentRepository) Delete(ctx context.Context, id model.ComponentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.components.remove(id) {
		return goerr.Wrap(ErrNotFound, "component not found", goerr.V("id", id))
	}
	r.changed()
	return nil
}
