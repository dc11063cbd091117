package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/utils/errutil"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
)

type SuggestUseCase struct {
	repo      interfaces.Repository
	suggester interfaces.Suggester
}

func NewSuggestUseCase(repo interfaces.Repository, suggester interfaces.Suggester) *SuggestUseCase {
	return &SuggestUseCase{repo: repo, suggester: suggester}
}

// SuggestRequest identifies the form being filled. ComponentID and
// FailureModeID are optional; the deepest one given sets the context.
type SuggestRequest struct {
	Kind           types.SuggestionKind
	ProjectID      model.ProjectID
	ComponentID    model.ComponentID
	FailureModeID  model.FailureModeID
	Hint           string
	MaxSuggestions int
}

// Enabled reports whether a suggester is configured
func (uc *SuggestUseCase) Enabled() bool {
	return uc.suggester != nil
}

// Suggest returns candidate values for a form field. Only an invalid kind is
// an error; every other failure yields an empty list.
func (uc *SuggestUseCase) Suggest(ctx context.Context, req SuggestRequest) ([]*model.Suggestion, error) {
	if !req.Kind.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid suggestion kind", goerr.V("kind", req.Kind))
	}
	if uc.suggester == nil {
		return []*model.Suggestion{}, nil
	}

	sc, err := uc.buildContext(ctx, req)
	if err != nil {
		logging.From(ctx).Warn("failed to build suggestion context", slog.Any("error", err))
		return []*model.Suggestion{}, nil
	}

	suggestions, err := uc.suggester.Suggest(ctx, sc)
	if err != nil {
		errutil.Handle(ctx, err, "suggestion failed")
		return []*model.Suggestion{}, nil
	}
	if suggestions == nil {
		suggestions = []*model.Suggestion{}
	}
	return suggestions, nil
}

func (uc *SuggestUseCase) buildContext(ctx context.Context, req SuggestRequest) (*model.SuggestionContext, error) {
	sc := &model.SuggestionContext{
		Kind:           req.Kind,
		Hint:           req.Hint,
		MaxSuggestions: req.MaxSuggestions,
		RatingScale:    types.DefaultRatingScale,
	}

	projectID := req.ProjectID
	componentID := req.ComponentID

	if req.FailureModeID != "" {
		scope, err := loadFailureModeScope(ctx, uc.repo, req.FailureModeID)
		if err != nil {
			return nil, err
		}
		sc.FailureMode = scope.failureMode.Description
		sc.ProcessStep = scope.failureMode.ProcessStep
		componentID = scope.component.ID
		projectID = scope.project.ID

		children, err := loadChildren(ctx, uc.repo, []model.FailureModeID{req.FailureModeID})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load children", goerr.V(FailureModeIDKey, req.FailureModeID))
		}
		ch := children[req.FailureModeID]
		for _, c := range ch.Causes {
			sc.ExistingCauses = append(sc.ExistingCauses, c.Description)
		}
		for _, e := range ch.Effects {
			sc.ExistingEffects = append(sc.ExistingEffects, e.Description)
		}
		for _, c := range ch.Controls {
			sc.ExistingControls = append(sc.ExistingControls, c.Description)
		}
		for _, a := range ch.Actions {
			sc.ExistingActions = append(sc.ExistingActions, a.Description)
		}
	}

	if componentID != "" {
		comp, err := uc.repo.Component().Get(ctx, componentID)
		if err != nil {
			return nil, notFound(err, ErrComponentNotFound, "failed to get component", goerr.V(ComponentIDKey, componentID))
		}
		sc.ComponentName = comp.Name
		sc.ComponentFunction = comp.Function
		if projectID == "" {
			projectID = comp.ProjectID
		}
	}

	if projectID != "" {
		project, err := uc.repo.Project().Get(ctx, projectID)
		if err != nil {
			return nil, notFound(err, ErrProjectNotFound, "failed to get project", goerr.V(ProjectIDKey, projectID))
		}
		sc.ProjectName = project.Name
		sc.RatingScale = project.Settings.RatingScale.Normalize()
	}

	return sc, nil
}
