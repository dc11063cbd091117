package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

// fixture is a project with one component and two failure modes:
// "Leak" scores 8x6x3=144 and "Crack" has no effects and scores 0.
type fixture struct {
	repo    *memory.Memory
	uc      *usecase.UseCases
	project *model.Project
	comp    *model.Component
	leak    *model.FailureMode
	crack   *model.FailureMode
}

func newFixture(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo, opts...)

	project, err := uc.Project.CreateProject(ctx, usecase.ProjectInput{Name: "Pump"}, nil)
	gt.NoError(t, err).Required()
	comp, err := uc.Component.CreateComponent(ctx, project.ID, usecase.ComponentInput{Name: "Seal", Function: "Keep fluid inside"})
	gt.NoError(t, err).Required()

	leak, err := uc.FailureMode.CreateFailureMode(ctx, comp.ID, usecase.FailureModeInput{Description: "Leak", ProcessStep: "Run"})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddCause(ctx, leak.ID, usecase.CauseInput{Description: "Wear", Occurrence: 6})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddCause(ctx, leak.ID, usecase.CauseInput{Description: "Bad install", Occurrence: 2})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddEffect(ctx, leak.ID, usecase.EffectInput{
		Description:    "Fluid loss",
		Severity:       8,
		SeverityPost:   model.IntPtr(8),
		OccurrencePost: model.IntPtr(2),
		DetectionPost:  model.IntPtr(2),
	})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddControl(ctx, leak.ID, usecase.ControlInput{Type: types.ControlTypeDetection, Description: "Pressure test", Detection: 3})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddControl(ctx, leak.ID, usecase.ControlInput{Type: types.ControlTypePrevention, Description: "Visual check", Detection: 7})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddAction(ctx, leak.ID, usecase.ActionInput{Description: "Replace seal", Owner: "bob"})
	gt.NoError(t, err).Required()

	crack, err := uc.FailureMode.CreateFailureMode(ctx, comp.ID, usecase.FailureModeInput{Description: "Crack", Status: types.FailureModeStatusOnHold})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddCause(ctx, crack.ID, usecase.CauseInput{Description: "Fatigue", Occurrence: 3})
	gt.NoError(t, err).Required()
	_, err = uc.FailureMode.AddAction(ctx, crack.ID, usecase.ActionInput{Description: "Inspect", Status: types.ActionStatusCompleted})
	gt.NoError(t, err).Required()

	return &fixture{repo: repo, uc: uc, project: project, comp: comp, leak: leak, crack: crack}
}
