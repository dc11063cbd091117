package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

type ComponentUseCase struct {
	repo interfaces.Repository
}

func NewComponentUseCase(repo interfaces.Repository) *ComponentUseCase {
	return &ComponentUseCase{repo: repo}
}

type ComponentInput struct {
	Name     string
	Function string
}

func (in ComponentInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return goerr.Wrap(ErrInvalidInput, "component name is required")
	}
	return nil
}

func (uc *ComponentUseCase) CreateComponent(ctx context.Context, projectID model.ProjectID, in ComponentInput) (*model.Component, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Project().Get(ctx, projectID); err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to get project", goerr.V(ProjectIDKey, projectID))
	}

	created, err := uc.repo.Component().Create(ctx, &model.Component{
		ProjectID: projectID,
		Name:      in.Name,
		Function:  in.Function,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create component", goerr.V(ProjectIDKey, projectID))
	}
	return created, nil
}

func (uc *ComponentUseCase) GetComponent(ctx context.Context, id model.ComponentID) (*model.Component, error) {
	comp, err := uc.repo.Component().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound, "failed to get component", goerr.V(ComponentIDKey, id))
	}
	return comp, nil
}

func (uc *ComponentUseCase) ListComponents(ctx context.Context, projectID model.ProjectID) ([]*model.Component, error) {
	if _, err := uc.repo.Project().Get(ctx, projectID); err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to get project", goerr.V(ProjectIDKey, projectID))
	}
	components, err := uc.repo.Component().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list components", goerr.V(ProjectIDKey, projectID))
	}
	return components, nil
}

func (uc *ComponentUseCase) UpdateComponent(ctx context.Context, id model.ComponentID, in ComponentInput) (*model.Component, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := uc.GetComponent(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = in.Name
	existing.Function = in.Function

	updated, err := uc.repo.Component().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound, "failed to update component", goerr.V(ComponentIDKey, id))
	}
	return updated, nil
}

// DeleteComponent removes the component and all of its failure modes
func (uc *ComponentUseCase) DeleteComponent(ctx context.Context, id model.ComponentID) error {
	if _, err := uc.GetComponent(ctx, id); err != nil {
		return err
	}
	return deleteComponentTree(ctx, uc.repo, id)
}
