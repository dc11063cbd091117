package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type ProjectUseCase struct {
	repo            interfaces.Repository
	defaultSettings model.Settings
}

func NewProjectUseCase(repo interfaces.Repository, defaultSettings model.Settings) *ProjectUseCase {
	return &ProjectUseCase{
		repo:            repo,
		defaultSettings: defaultSettings.Normalize(),
	}
}

// ProjectInput is the user editable part of a project
type ProjectInput struct {
	Name        string
	Description string
}

func (in ProjectInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return goerr.Wrap(ErrInvalidInput, "project name is required")
	}
	return nil
}

// CreateProject creates a project. nil settings selects the default settings.
func (uc *ProjectUseCase) CreateProject(ctx context.Context, in ProjectInput, settings *model.Settings) (*model.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s := uc.defaultSettings.Clone()
	if settings != nil {
		s = settings.Normalize()
		if err := checkSettings(s); err != nil {
			return nil, goerr.Wrap(err, "invalid project settings")
		}
	}

	created, err := uc.repo.Project().Create(ctx, &model.Project{
		Name:        in.Name,
		Description: in.Description,
		Settings:    s,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}
	return created, nil
}

func (uc *ProjectUseCase) GetProject(ctx context.Context, id model.ProjectID) (*model.Project, error) {
	project, err := uc.repo.Project().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to get project", goerr.V(ProjectIDKey, id))
	}
	project.Settings = project.Settings.Normalize()
	return project, nil
}

func (uc *ProjectUseCase) ListProjects(ctx context.Context) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	for _, p := range projects {
		p.Settings = p.Settings.Normalize()
	}
	return projects, nil
}

func (uc *ProjectUseCase) UpdateProject(ctx context.Context, id model.ProjectID, in ProjectInput) (*model.Project, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := uc.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = in.Name
	existing.Description = in.Description

	updated, err := uc.repo.Project().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to update project", goerr.V(ProjectIDKey, id))
	}
	return updated, nil
}

// DeleteProject removes the project with every component and failure mode it owns
func (uc *ProjectUseCase) DeleteProject(ctx context.Context, id model.ProjectID) error {
	if _, err := uc.GetProject(ctx, id); err != nil {
		return err
	}
	return deleteProjectTree(ctx, uc.repo, id)
}

func (uc *ProjectUseCase) GetSettings(ctx context.Context, id model.ProjectID) (model.Settings, error) {
	project, err := uc.GetProject(ctx, id)
	if err != nil {
		return model.Settings{}, err
	}
	return project.Settings, nil
}

// ValidateSettings checks settings without saving them
func (uc *ProjectUseCase) ValidateSettings(settings model.Settings) []string {
	return ValidateSettings(settings.Normalize())
}

// UpdateSettings replaces the settings of a project. Invalid settings are
// rejected with a *SettingsError, as is a rating scale that existing ratings
// of the project do not fit in.
func (uc *ProjectUseCase) UpdateSettings(ctx context.Context, id model.ProjectID, settings model.Settings) (*model.Project, error) {
	s := settings.Normalize()
	if err := checkSettings(s); err != nil {
		return nil, goerr.Wrap(err, "invalid project settings", goerr.V(ProjectIDKey, id))
	}

	data, err := loadProject(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	if s.RatingScale < data.project.Settings.RatingScale {
		if n := countRatingsAbove(data, s.RatingScale); n > 0 {
			return nil, goerr.Wrap(&SettingsError{Messages: []string{
				fmt.Sprintf("%d existing ratings are greater than the new rating scale of %d", n, s.RatingScale),
			}}, "rating scale does not fit existing ratings", goerr.V(ProjectIDKey, id))
		}
	}

	project := data.project
	project.Settings = s
	updated, err := uc.repo.Project().Update(ctx, project)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to update project settings", goerr.V(ProjectIDKey, id))
	}
	return updated, nil
}

func countRatingsAbove(data *projectData, scale types.RatingScale) int {
	limit := int(scale)
	n := 0
	above := func(v int) {
		if v > limit {
			n++
		}
	}
	abovePtr := func(v *int) {
		if v != nil {
			above(*v)
		}
	}

	for _, ch := range data.children {
		for _, c := range ch.Causes {
			above(c.Occurrence)
		}
		for _, e := range ch.Effects {
			above(e.Severity)
			abovePtr(e.SeverityPost)
			abovePtr(e.OccurrencePost)
			abovePtr(e.DetectionPost)
		}
		for _, c := range ch.Controls {
			above(c.Detection)
			above(c.Effectiveness)
		}
	}
	return n
}
