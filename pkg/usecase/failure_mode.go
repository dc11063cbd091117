package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type FailureModeUseCase struct {
	repo interfaces.Repository
}

func NewFailureModeUseCase(repo interfaces.Repository) *FailureModeUseCase {
	return &FailureModeUseCase{repo: repo}
}

// FailureModeInput is the user editable part of a failure mode.
// An empty status is read as active.
type FailureModeInput struct {
	Description string
	ProcessStep string
	Status      types.FailureModeStatus
}

func (in *FailureModeInput) normalize() error {
	if strings.TrimSpace(in.Description) == "" {
		return goerr.Wrap(ErrInvalidInput, "failure mode description is required")
	}
	if in.Status == "" {
		in.Status = types.FailureModeStatusActive
	}
	if !in.Status.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid failure mode status", goerr.V("status", in.Status))
	}
	return nil
}

func (uc *FailureModeUseCase) CreateFailureMode(ctx context.Context, componentID model.ComponentID, in FailureModeInput) (*model.FailureMode, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Component().Get(ctx, componentID); err != nil {
		return nil, notFound(err, ErrComponentNotFound, "failed to get component", goerr.V(ComponentIDKey, componentID))
	}

	created, err := uc.repo.FailureMode().Create(ctx, &model.FailureMode{
		ComponentID: componentID,
		Description: in.Description,
		ProcessStep: in.ProcessStep,
		Status:      in.Status,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create failure mode", goerr.V(ComponentIDKey, componentID))
	}
	return created, nil
}

func (uc *FailureModeUseCase) GetFailureMode(ctx context.Context, id model.FailureModeID) (*model.FailureMode, error) {
	fm, err := uc.repo.FailureMode().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFailureModeNotFound, "failed to get failure mode", goerr.V(FailureModeIDKey, id))
	}
	return fm, nil
}

// GetChildren returns the causes, effects, controls and actions of a failure mode
func (uc *FailureModeUseCase) GetChildren(ctx context.Context, id model.FailureModeID) (*model.FailureModeChildren, error) {
	if _, err := uc.GetFailureMode(ctx, id); err != nil {
		return nil, err
	}
	children, err := loadChildren(ctx, uc.repo, []model.FailureModeID{id})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load children", goerr.V(FailureModeIDKey, id))
	}
	return children[id], nil
}

func (uc *FailureModeUseCase) ListFailureModes(ctx context.Context, componentID model.ComponentID) ([]*model.FailureMode, error) {
	if _, err := uc.repo.Component().Get(ctx, componentID); err != nil {
		return nil, notFound(err, ErrComponentNotFound, "failed to get component", goerr.V(ComponentIDKey, componentID))
	}
	fms, err := uc.repo.FailureMode().ListByComponent(ctx, componentID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list failure modes", goerr.V(ComponentIDKey, componentID))
	}
	return fms, nil
}

func (uc *FailureModeUseCase) UpdateFailureMode(ctx context.Context, id model.FailureModeID, in FailureModeInput) (*model.FailureMode, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	existing, err := uc.GetFailureMode(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Description = in.Description
	existing.ProcessStep = in.ProcessStep
	existing.Status = in.Status

	updated, err := uc.repo.FailureMode().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrFailureModeNotFound, "failed to update failure mode", goerr.V(FailureModeIDKey, id))
	}
	return updated, nil
}

// DeleteFailureMode removes the failure mode with its causes, effects, controls and actions
func (uc *FailureModeUseCase) DeleteFailureMode(ctx context.Context, id model.FailureModeID) error {
	if _, err := uc.GetFailureMode(ctx, id); err != nil {
		return err
	}
	return deleteFailureModeTree(ctx, uc.repo, id)
}
