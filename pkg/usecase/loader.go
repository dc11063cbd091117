package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/risk"
	"golang.org/x/sync/errgroup"
)

// FailureModeRisk is a failure mode with everything it owns and its computed risk
type FailureModeRisk struct {
	Component   *model.Component
	FailureMode *model.FailureMode
	Children    *model.FailureModeChildren
	Score       risk.Score
	Band        model.Band
	PostRPN     int
}

func (r *FailureModeRisk) entry() risk.Entry {
	return risk.Entry{
		FailureMode: r.FailureMode,
		Component:   r.Component,
		Score:       r.Score,
		PostRPN:     r.PostRPN,
	}
}

func newFailureModeRisk(settings model.Settings, comp *model.Component, fm *model.FailureMode, children *model.FailureModeChildren) *FailureModeRisk {
	if children == nil {
		children = &model.FailureModeChildren{}
	}
	e := risk.NewEntry(comp, fm, children)
	return &FailureModeRisk{
		Component:   comp,
		FailureMode: fm,
		Children:    children,
		Score:       e.Score,
		Band:        risk.ClassifyBand(e.Score.RPN, settings.Bands),
		PostRPN:     e.PostRPN,
	}
}

// projectData is a fully loaded project tree in creation order
type projectData struct {
	project      *model.Project
	components   []*model.Component
	failureModes map[model.ComponentID][]*model.FailureMode
	children     map[model.FailureModeID]*model.FailureModeChildren
}

func loadProject(ctx context.Context, repo interfaces.Repository, projectID model.ProjectID) (*projectData, error) {
	project, err := repo.Project().Get(ctx, projectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to get project", goerr.V(ProjectIDKey, projectID))
	}
	project.Settings = project.Settings.Normalize()

	components, err := repo.Component().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list components", goerr.V(ProjectIDKey, projectID))
	}

	componentIDs := make([]model.ComponentID, len(components))
	for i, c := range components {
		componentIDs[i] = c.ID
	}
	failureModes, err := repo.FailureMode().ListByComponents(ctx, componentIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list failure modes", goerr.V(ProjectIDKey, projectID))
	}

	var fmIDs []model.FailureModeID
	for _, c := range components {
		for _, fm := range failureModes[c.ID] {
			fmIDs = append(fmIDs, fm.ID)
		}
	}

	children, err := loadChildren(ctx, repo, fmIDs)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load failure mode children", goerr.V(ProjectIDKey, projectID))
	}

	return &projectData{
		project:      project,
		components:   components,
		failureModes: failureModes,
		children:     children,
	}, nil
}

// loadChildren fetches the four child collections of fmIDs concurrently
func loadChildren(ctx context.Context, repo interfaces.Repository, fmIDs []model.FailureModeID) (map[model.FailureModeID]*model.FailureModeChildren, error) {
	result := make(map[model.FailureModeID]*model.FailureModeChildren, len(fmIDs))
	for _, id := range fmIDs {
		result[id] = &model.FailureModeChildren{}
	}
	if len(fmIDs) == 0 {
		return result, nil
	}

	var (
		causes   map[model.FailureModeID][]*model.Cause
		effects  map[model.FailureModeID][]*model.Effect
		controls map[model.FailureModeID][]*model.Control
		actions  map[model.FailureModeID][]*model.Action
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if causes, err = repo.Cause().ListByFailureModes(ctx, fmIDs); err != nil {
			return goerr.Wrap(err, "failed to list causes")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if effects, err = repo.Effect().ListByFailureModes(ctx, fmIDs); err != nil {
			return goerr.Wrap(err, "failed to list effects")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if controls, err = repo.Control().ListByFailureModes(ctx, fmIDs); err != nil {
			return goerr.Wrap(err, "failed to list controls")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if actions, err = repo.Action().ListByFailureModes(ctx, fmIDs); err != nil {
			return goerr.Wrap(err, "failed to list actions")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, id := range fmIDs {
		result[id] = &model.FailureModeChildren{
			Causes:   causes[id],
			Effects:  effects[id],
			Controls: controls[id],
			Actions:  actions[id],
		}
	}
	return result, nil
}

// risks returns every failure mode of the project in tree order
func (d *projectData) risks() []*FailureModeRisk {
	var out []*FailureModeRisk
	for _, c := range d.components {
		for _, fm := range d.failureModes[c.ID] {
			out = append(out, newFailureModeRisk(d.project.Settings, c, fm, d.children[fm.ID]))
		}
	}
	return out
}

func (d *projectData) actions() []*model.Action {
	var out []*model.Action
	for _, c := range d.components {
		for _, fm := range d.failureModes[c.ID] {
			if ch := d.children[fm.ID]; ch != nil {
				out = append(out, ch.Actions...)
			}
		}
	}
	return out
}

func entries(risks []*FailureModeRisk) []risk.Entry {
	out := make([]risk.Entry, len(risks))
	for i, r := range risks {
		out[i] = r.entry()
	}
	return out
}

// failureModeScope resolves the chain of owners of a failure mode
type failureModeScope struct {
	project     *model.Project
	component   *model.Component
	failureMode *model.FailureMode
}

func loadFailureModeScope(ctx context.Context, repo interfaces.Repository, id model.FailureModeID) (*failureModeScope, error) {
	fm, err := repo.FailureMode().Get(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFailureModeNotFound, "failed to get failure mode", goerr.V(FailureModeIDKey, id))
	}
	comp, err := repo.Component().Get(ctx, fm.ComponentID)
	if err != nil {
		return nil, notFound(err, ErrComponentNotFound, "failed to get component",
			goerr.V(FailureModeIDKey, id),
			goerr.V(ComponentIDKey, fm.ComponentID))
	}
	project, err := repo.Project().Get(ctx, comp.ProjectID)
	if err != nil {
		return nil, notFound(err, ErrProjectNotFound, "failed to get project",
			goerr.V(ComponentIDKey, comp.ID),
			goerr.V(ProjectIDKey, comp.ProjectID))
	}
	project.Settings = project.Settings.Normalize()

	return &failureModeScope{project: project, component: comp, failureMode: fm}, nil
}

func deleteFailureModeTree(ctx context.Context, repo interfaces.Repository, id model.FailureModeID) error {
	if err := repo.Cause().DeleteByFailureMode(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete causes", goerr.V(FailureModeIDKey, id))
	}
	if err := repo.Effect().DeleteByFailureMode(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete effects", goerr.V(FailureModeIDKey, id))
	}
	if err := repo.Control().DeleteByFailureMode(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete controls", goerr.V(FailureModeIDKey, id))
	}
	if err := repo.Action().DeleteByFailureMode(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete actions", goerr.V(FailureModeIDKey, id))
	}
	if err := repo.FailureMode().Delete(ctx, id); err != nil {
		return notFound(err, ErrFailureModeNotFound, "failed to delete failure mode", goerr.V(FailureModeIDKey, id))
	}
	return nil
}

func deleteComponentTree(ctx context.Context, repo interfaces.Repository, id model.ComponentID) error {
	fms, err := repo.FailureMode().ListByComponent(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to list failure modes", goerr.V(ComponentIDKey, id))
	}
	for _, fm := range fms {
		if err := deleteFailureModeTree(ctx, repo, fm.ID); err != nil {
			return goerr.Wrap(err, "failed to delete failure mode", goerr.V(ComponentIDKey, id))
		}
	}
	if err := repo.Component().Delete(ctx, id); err != nil {
		return notFound(err, ErrComponentNotFound, "failed to delete component", goerr.V(ComponentIDKey, id))
	}
	return nil
}

func deleteProjectTree(ctx context.Context, repo interfaces.Repository, id model.ProjectID) error {
	components, err := repo.Component().ListByProject(ctx, id)
	if err != nil {
		return goerr.Wrap(err, "failed to list components", goerr.V(ProjectIDKey, id))
	}
	for _, c := range components {
		if err := deleteComponentTree(ctx, repo, c.ID); err != nil {
			return goerr.Wrap(err, "failed to delete component", goerr.V(ProjectIDKey, id))
		}
	}
	if err := repo.Project().Delete(ctx, id); err != nil {
		return notFound(err, ErrProjectNotFound, "failed to delete project", goerr.V(ProjectIDKey, id))
	}
	return nil
}
