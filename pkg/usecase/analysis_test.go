package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

func TestAnalysisUseCase_GetFailureModeRisk(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("scored failure mode", func(t *testing.T) {
		r, err := f.uc.Analysis.GetFailureModeRisk(ctx, f.leak.ID)
		gt.NoError(t, err).Required()

		// S8 x O6 x D3, the lowest detection among controls
		gt.Value(t, r.Score.RPN).Equal(144)
		gt.Value(t, r.Score.Severity).Equal(8)
		gt.Value(t, r.Score.Occurrence).Equal(6)
		gt.Value(t, r.Score.Detection).Equal(3)
		gt.Value(t, r.Band.Label).Equal("High")
		gt.Value(t, r.PostRPN).Equal(32)
		gt.Value(t, r.Component.ID).Equal(f.comp.ID)
		gt.Array(t, r.Children.Causes).Length(2)
	})

	t.Run("failure mode without effects", func(t *testing.T) {
		r, err := f.uc.Analysis.GetFailureModeRisk(ctx, f.crack.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, r.Score.RPN).Equal(0)
		gt.Value(t, r.Score.Detection).Equal(10)
		gt.Value(t, r.PostRPN).Equal(0)
	})

	t.Run("unknown failure mode", func(t *testing.T) {
		_, err := f.uc.Analysis.GetFailureModeRisk(ctx, "missing")
		gt.Error(t, err).Is(usecase.ErrFailureModeNotFound)
	})
}

func TestAnalysisUseCase_ListProjectRisks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("highest first", func(t *testing.T) {
		risks, err := f.uc.Analysis.ListProjectRisks(ctx, f.project.ID, usecase.RiskFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2).Required()
		gt.Value(t, risks[0].FailureMode.ID).Equal(f.leak.ID)
		gt.Value(t, risks[1].FailureMode.ID).Equal(f.crack.ID)
	})

	t.Run("filter by band", func(t *testing.T) {
		risks, err := f.uc.Analysis.ListProjectRisks(ctx, f.project.ID, usecase.RiskFilter{Band: "High"})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(1).Required()
		gt.Value(t, risks[0].FailureMode.ID).Equal(f.leak.ID)
	})

	t.Run("filter by status", func(t *testing.T) {
		risks, err := f.uc.Analysis.ListProjectRisks(ctx, f.project.ID, usecase.RiskFilter{Status: types.FailureModeStatusOnHold})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(1).Required()
		gt.Value(t, risks[0].FailureMode.ID).Equal(f.crack.ID)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		risks, err := f.uc.Analysis.ListProjectRisks(ctx, f.project.ID, usecase.RiskFilter{Band: "Medium"})
		gt.NoError(t, err).Required()
		gt.True(t, risks != nil)
		gt.Array(t, risks).Length(0)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := f.uc.Analysis.ListProjectRisks(ctx, f.project.ID, usecase.RiskFilter{Status: "open"})
		gt.Error(t, err).Is(usecase.ErrInvalidInput)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := f.uc.Analysis.ListProjectRisks(ctx, "missing", usecase.RiskFilter{})
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)
	})
}

func TestAnalysisUseCase_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.uc.Analysis.Dashboard(ctx, f.project.ID, 10)
	gt.NoError(t, err).Required()

	gt.Value(t, d.TotalFailureModes).Equal(2)
	gt.Value(t, d.HighRiskModes).Equal(0)
	gt.Value(t, d.CriticalModes).Equal(0)
	gt.Value(t, d.AverageRPN).Equal(72)
	gt.Value(t, d.OpenActions).Equal(1)
	gt.Value(t, d.CompletedActions).Equal(1)

	gt.Array(t, d.RiskDistribution).Length(4).Required()
	gt.Value(t, d.RiskDistribution[0].Count).Equal(1)
	gt.Value(t, d.RiskDistribution[1].Count).Equal(1)
	gt.Value(t, d.RiskDistribution[1].Percentage).Equal(50)

	gt.Array(t, d.TopRisks).Length(2).Required()
	gt.Value(t, d.TopRisks[0].Score.RPN).Equal(144)

	t.Run("top N", func(t *testing.T) {
		d, err := f.uc.Analysis.Dashboard(ctx, f.project.ID, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, d.TopRisks).Length(1)
	})

	t.Run("empty project", func(t *testing.T) {
		p, err := f.uc.Project.CreateProject(ctx, usecase.ProjectInput{Name: "Empty"}, nil)
		gt.NoError(t, err).Required()
		d, err := f.uc.Analysis.Dashboard(ctx, p.ID, 10)
		gt.NoError(t, err).Required()
		gt.Value(t, d.TotalFailureModes).Equal(0)
		gt.Value(t, d.AverageRPN).Equal(0)
		for _, b := range d.RiskDistribution {
			gt.Value(t, b.Percentage).Equal(0)
		}
	})
}

func TestAnalysisUseCase_SummaryTreeClassify(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("summary", func(t *testing.T) {
		s, err := f.uc.Analysis.Summary(ctx, f.project.ID, 5)
		gt.NoError(t, err).Required()
		gt.Value(t, s.TotalFailureModes).Equal(2)
		gt.Value(t, s.Unscored).Equal(1)
		gt.Array(t, s.Distribution).Length(4).Required()
		gt.Value(t, s.Distribution[2].Label).Equal("High")
		gt.Value(t, s.Distribution[2].Percentage).Equal(100)
	})

	t.Run("tree", func(t *testing.T) {
		tree, err := f.uc.Analysis.Tree(ctx, f.project.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, tree.Project.ID).Equal(f.project.ID)
		gt.Array(t, tree.Components).Length(1).Required()
		fms := tree.Components[0].FailureModes
		gt.Array(t, fms).Length(2).Required()
		gt.Value(t, fms[0].FailureMode.Description).Equal("Leak")
		gt.Value(t, fms[0].Score.RPN).Equal(144)
		gt.Value(t, fms[1].FailureMode.Description).Equal("Crack")
	})

	t.Run("classify", func(t *testing.T) {
		for rpn, want := range map[int]string{1: "Low", 70: "Medium", 150: "High", 151: "Critical", 5000: "Critical"} {
			band, err := f.uc.Analysis.Classify(ctx, f.project.ID, rpn)
			gt.NoError(t, err).Required()
			gt.Value(t, band.Label).Equal(want)
		}

		_, err := f.uc.Analysis.Classify(ctx, "missing", 10)
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)
	})
}
