package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type projectRepository struct {
	*store
	projects *table[model.ProjectID, *model.Project]
}

func newProjectRepository(s *store) *projectRepository {
	return &projectRepository{
		store:    s,
		projects: newTable[model.ProjectID, *model.Project](),
	}
}

func copyProject(p *model.Project) *model.Project {
	copied := *p
	copied.Settings = p.Settings.Clone()
	return &copied
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyProject(project)
	if created.ID == "" {
		created.ID = model.NewProjectID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.projects.put(created.ID, created)
	r.changed()
	return copyProject(created), nil
}

func (r *projectRepository) Get(ctx context.Context, id model.ProjectID) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.projects.get(id)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	return copyProject(p), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.projects.values(nil)
	projects := make([]*model.Project, 0, len(rows))
	for _, p := range rows {
		projects = append(projects, copyProject(p))
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects.get(project.ID)
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", project.ID))
	}

	updated := copyProject(project)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.projects.put(updated.ID, updated)
	r.changed()
	return copyProject(updated), nil
}

func (r *projectRepository) Delete(ctx context.Context, id model.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.projects.remove(id) {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	r.changed()
	return nil
}
