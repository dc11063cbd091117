package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/risk"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

type AnalysisUseCase struct {
	repo interfaces.Repository
}

func NewAnalysisUseCase(repo interfaces.Repository) *AnalysisUseCase {
	return &AnalysisUseCase{repo: repo}
}

// RiskFilter narrows ListProjectRisks. Zero values match everything.
type RiskFilter struct {
	Band   string
	Status types.FailureModeStatus
}

func (f RiskFilter) match(r *FailureModeRisk) bool {
	if f.Band != "" && r.Band.Label != f.Band {
		return false
	}
	if f.Status != "" && r.FailureMode.Status != f.Status {
		return false
	}
	return true
}

type ComponentTree struct {
	Component    *model.Component
	FailureModes []*FailureModeRisk
}

type ProjectTree struct {
	Project    *model.Project
	Components []*ComponentTree
}

// GetFailureModeRisk returns a failure mode with its children, representative
// score, band and post mitigation RPN
func (uc *AnalysisUseCase) GetFailureModeRisk(ctx context.Context, id model.FailureModeID) (*FailureModeRisk, error) {
	scope, err := loadFailureModeScope(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	children, err := loadChildren(ctx, uc.repo, []model.FailureModeID{id})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load children", goerr.V(FailureModeIDKey, id))
	}
	return newFailureModeRisk(scope.project.Settings, scope.component, scope.failureMode, children[id]), nil
}

// ListProjectRisks returns the failure modes of a project matching filter,
// highest RPN first. Equal RPNs keep tree order.
func (uc *AnalysisUseCase) ListProjectRisks(ctx context.Context, projectID model.ProjectID, filter RiskFilter) ([]*FailureModeRisk, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid failure mode status", goerr.V("status", filter.Status))
	}

	data, err := loadProject(ctx, uc.repo, projectID)
	if err != nil {
		return nil, err
	}

	out := []*FailureModeRisk{}
	for _, r := range data.risks() {
		if filter.match(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.RPN > out[j].Score.RPN
	})
	return out, nil
}

// Dashboard aggregates the project with its dashboard cutoffs. topN <= 0 keeps all top risks.
func (uc *AnalysisUseCase) Dashboard(ctx context.Context, projectID model.ProjectID, topN int) (*risk.Dashboard, error) {
	data, err := loadProject(ctx, uc.repo, projectID)
	if err != nil {
		return nil, err
	}
	d := risk.BuildDashboard(entries(data.risks()), data.actions(), data.project.Settings.Dashboard, topN)
	return &d, nil
}

// Summary aggregates the project over its own bands
func (uc *AnalysisUseCase) Summary(ctx context.Context, projectID model.ProjectID, topN int) (*risk.Summary, error) {
	data, err := loadProject(ctx, uc.repo, projectID)
	if err != nil {
		return nil, err
	}
	s := risk.BuildSummary(entries(data.risks()), data.project.Settings.Bands, topN)
	return &s, nil
}

func (uc *AnalysisUseCase) Tree(ctx context.Context, projectID model.ProjectID) (*ProjectTree, error) {
	data, err := loadProject(ctx, uc.repo, projectID)
	if err != nil {
		return nil, err
	}

	tree := &ProjectTree{Project: data.project, Components: make([]*ComponentTree, 0, len(data.components))}
	for _, c := range data.components {
		ct := &ComponentTree{Component: c, FailureModes: []*FailureModeRisk{}}
		for _, fm := range data.failureModes[c.ID] {
			ct.FailureModes = append(ct.FailureModes, newFailureModeRisk(data.project.Settings, c, fm, data.children[fm.ID]))
		}
		tree.Components = append(tree.Components, ct)
	}
	return tree, nil
}

// Classify returns the band of rpn in the project's settings
func (uc *AnalysisUseCase) Classify(ctx context.Context, projectID model.ProjectID, rpn int) (model.Band, error) {
	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return model.Band{}, notFound(err, ErrProjectNotFound, "failed to get project", goerr.V(ProjectIDKey, projectID))
	}
	return risk.ClassifyBand(rpn, project.Settings.Normalize().Bands), nil
}
