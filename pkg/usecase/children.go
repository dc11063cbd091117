package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

func checkRating(scale types.RatingScale, field string, v int) error {
	return scale.ValidateRating(field, v)
}

func checkOptionalRating(scale types.RatingScale, field string, v *int) error {
	if v == nil {
		return nil
	}
	return checkRating(scale, field, *v)
}

func requireDescription(kind, desc string) error {
	if strings.TrimSpace(desc) == "" {
		return goerr.Wrap(ErrInvalidInput, kind+" description is required")
	}
	return nil
}

type CauseInput struct {
	Description string
	Occurrence  int
}

func (in CauseInput) validate(scale types.RatingScale) error {
	if err := requireDescription("cause", in.Description); err != nil {
		return err
	}
	return checkRating(scale, "occurrence", in.Occurrence)
}

// EffectInput holds an effect. The post mitigation ratings are optional.
type EffectInput struct {
	Description       string
	Severity          int
	SeverityPost      *int
	OccurrencePost    *int
	DetectionPost     *int
	JustificationPre  string
	JustificationPost string
	ActionTaken       string
}

func (in EffectInput) validate(scale types.RatingScale) error {
	if err := requireDescription("effect", in.Description); err != nil {
		return err
	}
	if err := checkRating(scale, "severity", in.Severity); err != nil {
		return err
	}
	if err := checkOptionalRating(scale, "severityPost", in.SeverityPost); err != nil {
		return err
	}
	if err := checkOptionalRating(scale, "occurrencePost", in.OccurrencePost); err != nil {
		return err
	}
	return checkOptionalRating(scale, "detectionPost", in.DetectionPost)
}

// ControlInput holds a control. Effectiveness 0 means not assessed.
type ControlInput struct {
	Type          types.ControlType
	Description   string
	Detection     int
	Effectiveness int
}

func (in ControlInput) validate(scale types.RatingScale) error {
	if err := requireDescription("control", in.Description); err != nil {
		return err
	}
	if !in.Type.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "control type must be prevention or detection", goerr.V("type", in.Type))
	}
	if err := checkRating(scale, "detection", in.Detection); err != nil {
		return err
	}
	if in.Effectiveness != 0 {
		return checkRating(scale, "effectiveness", in.Effectiveness)
	}
	return nil
}

// ActionInput holds a recommended action. An empty status is read as open.
type ActionInput struct {
	Description string
	Owner       string
	DueDate     *time.Time
	Status      types.ActionStatus
}

func (in *ActionInput) normalize() error {
	if err := requireDescription("action", in.Description); err != nil {
		return err
	}
	in.Status = in.Status.Normalize()
	if !in.Status.IsValid() {
		return goerr.Wrap(ErrInvalidInput, "invalid action status", goerr.V("status", in.Status))
	}
	return nil
}

func (uc *FailureModeUseCase) AddCause(ctx context.Context, fmID model.FailureModeID, in CauseInput) (*model.Cause, error) {
	scope, err := loadFailureModeScope(ctx, uc.repo, fmID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(scope.project.Settings.RatingScale); err != nil {
		return nil, err
	}

	created, err := uc.repo.Cause().Create(ctx, &model.Cause{
		FailureModeID: fmID,
		Description:   in.Description,
		Occurrence:    in.Occurrence,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create cause", goerr.V(FailureModeIDKey, fmID))
	}
	return created, nil
}

func (uc *FailureModeUseCase) UpdateCause(ctx context.Context, id model.CauseID, in CauseInput) (*model.Cause, error) {
	existing, err := uc.repo.Cause().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCauseNotFound, "failed to get cause", goerr.V(CauseIDKey, id))
	}
	scope, err := loadFailureModeScope(ctx, uc.repo, existing.FailureModeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(scope.project.Settings.RatingScale); err != nil {
		return nil, err
	}

	existing.Description = in.Description
	existing.Occurrence = in.Occurrence
	updated, err := uc.repo.Cause().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrCauseNotFound, "failed to update cause", goerr.V(CauseIDKey, id))
	}
	return updated, nil
}

func (uc *FailureModeUseCase) DeleteCause(ctx context.Context, id model.CauseID) error {
	if err := uc.repo.Cause().Delete(ctx, id); err != nil {
		return notFound(err, ErrCauseNotFound, "failed to delete cause", goerr.V(CauseIDKey, id))
	}
	return nil
}

func (uc *FailureModeUseCase) AddEffect(ctx context.Context, fmID model.FailureModeID, in EffectInput) (*model.Effect, error) {
	scope, err := loadFailureModeScope(ctx, uc.repo, fmID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(scope.project.Settings.RatingScale); err != nil {
		return nil, err
	}

	effect := &model.Effect{FailureModeID: fmID}
	in.apply(effect)
	created, err := uc.repo.Effect().Create(ctx, effect)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create effect", goerr.V(FailureModeIDKey, fmID))
	}
	return created, nil
}

func (in EffectInput) apply(e *model.Effect) {
	e.Description = in.Description
	e.Severity = in.Severity
	e.SeverityPost = in.SeverityPost
	e.OccurrencePost = in.OccurrencePost
	e.DetectionPost = in.DetectionPost
	e.JustificationPre = in.JustificationPre
	e.JustificationPost = in.JustificationPost
	e.ActionTaken = in.ActionTaken
}

func (uc *FailureModeUseCase) UpdateEffect(ctx context.Context, id model.EffectID, in EffectInput) (*model.Effect, error) {
	existing, err := uc.repo.Effect().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEffectNotFound, "failed to get effect", goerr.V(EffectIDKey, id))
	}
	scope, err := loadFailureModeScope(ctx, uc.repo, existing.FailureModeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(scope.project.Settings.RatingScale); err != nil {
		return nil, err
	}

	in.apply(existing)
	updated, err := uc.repo.Effect().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrEffectNotFound, "failed to update effect", goerr.V(EffectIDKey, id))
	}
	return updated, nil
}

func (uc *FailureModeUseCase) DeleteEffect(ctx context.Context, id model.EffectID) error {
	if err := uc.repo.Effect().Delete(ctx, id); err != nil {
		return notFound(err, ErrEffectNotFound, "failed to delete effect", goerr.V(EffectIDKey, id))
	}
	return nil
}

func (uc *FailureModeUseCase) AddControl(ctx context.Context, fmID model.FailureModeID, in ControlInput) (*model.Control, error) {
	scope, err := loadFailureModeScope(ctx, uc.repo, fmID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(scope.project.Settings.RatingScale); err != nil {
		return nil, err
	}

	created, err := uc.repo.Control().Create(ctx, &model.Control{
		FailureModeID: fmID,
		Type:          in.Type,
		Description:   in.Description,
		Detection:     in.Detection,
		Effectiveness: in.Effectiveness,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create control", goerr.V(FailureModeIDKey, fmID))
	}
	return created, nil
}

func (uc *FailureModeUseCase) UpdateControl(ctx context.Context, id model.ControlID, in ControlInput) (*model.Control, error) {
	existing, err := uc.repo.Control().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrControlNotFound, "failed to get control", goerr.V(ControlIDKey, id))
	}
	scope, err := loadFailureModeScope(ctx, uc.repo, existing.FailureModeID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(scope.project.Settings.RatingScale); err != nil {
		return nil, err
	}

	existing.Type = in.Type
	existing.Description = in.Description
	existing.Detection = in.Detection
	existing.Effectiveness = in.Effectiveness
	updated, err := uc.repo.Control().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrControlNotFound, "failed to update control", goerr.V(ControlIDKey, id))
	}
	return updated, nil
}

func (uc *FailureModeUseCase) DeleteControl(ctx context.Context, id model.ControlID) error {
	if err := uc.repo.Control().Delete(ctx, id); err != nil {
		return notFound(err, ErrControlNotFound, "failed to delete control", goerr.V(ControlIDKey, id))
	}
	return nil
}

func (uc *FailureModeUseCase) AddAction(ctx context.Context, fmID model.FailureModeID, in ActionInput) (*model.Action, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if _, err := uc.GetFailureMode(ctx, fmID); err != nil {
		return nil, err
	}

	created, err := uc.repo.Action().Create(ctx, &model.Action{
		FailureModeID: fmID,
		Description:   in.Description,
		Owner:         in.Owner,
		DueDate:       in.DueDate,
		Status:        in.Status,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V(FailureModeIDKey, fmID))
	}
	return created, nil
}

func (uc *FailureModeUseCase) UpdateAction(ctx context.Context, id model.ActionID, in ActionInput) (*model.Action, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.Action().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrActionNotFound, "failed to get action", goerr.V(ActionIDKey, id))
	}

	existing.Description = in.Description
	existing.Owner = in.Owner
	existing.DueDate = in.DueDate
	existing.Status = in.Status
	updated, err := uc.repo.Action().Update(ctx, existing)
	if err != nil {
		return nil, notFound(err, ErrActionNotFound, "failed to update action", goerr.V(ActionIDKey, id))
	}
	return updated, nil
}

func (uc *FailureModeUseCase) DeleteAction(ctx context.Context, id model.ActionID) error {
	if err := uc.repo.Action().Delete(ctx, id); err != nil {
		return notFound(err, ErrActionNotFound, "failed to delete action", goerr.V(ActionIDKey, id))
	}
	return nil
}

func (uc *FailureModeUseCase) GetCause(ctx context.Context, id model.CauseID) (*model.Cause, error) {
	v, err := uc.repo.Cause().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrCauseNotFound, "failed to get cause", goerr.V(CauseIDKey, id))
	}
	return v, nil
}

func (uc *FailureModeUseCase) GetEffect(ctx context.Context, id model.EffectID) (*model.Effect, error) {
	v, err := uc.repo.Effect().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrEffectNotFound, "failed to get effect", goerr.V(EffectIDKey, id))
	}
	return v, nil
}

func (uc *FailureModeUseCase) GetControl(ctx context.Context, id model.ControlID) (*model.Control, error) {
	v, err := uc.repo.Control().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrControlNotFound, "failed to get control", goerr.V(ControlIDKey, id))
	}
	return v, nil
}

func (uc *FailureModeUseCase) GetAction(ctx context.Context, id model.ActionID) (*model.Action, error) {
	v, err := uc.repo.Action().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrActionNotFound, "failed to get action", goerr.V(ActionIDKey, id))
	}
	return v, nil
}
