package usecase

import (
	"context"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/risk"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/service/export"
	"github.com/secmon-lab/fmea/pkg/utils/async"
)

type ExportUseCase struct {
	repo            interfaces.Repository
	defaultSettings model.Settings
	uploader        interfaces.ReportUploader
	now             func() time.Time
}

func NewExportUseCase(repo interfaces.Repository, defaultSettings model.Settings, uploader interfaces.ReportUploader, now func() time.Time) *ExportUseCase {
	if now == nil {
		now = time.Now
	}
	return &ExportUseCase{
		repo:            repo,
		defaultSettings: defaultSettings.Normalize(),
		uploader:        uploader,
		now:             now,
	}
}

// ExportResult is a rendered report ready to be served or stored
type ExportResult struct {
	Report      *export.Report
	Format      export.Format
	Data        []byte
	ContentType string
	FileName    string
}

// BuildReport loads a project and computes everything a report shows
func (uc *ExportUseCase) BuildReport(ctx context.Context, projectID model.ProjectID) (*export.Report, error) {
	data, err := loadProject(ctx, uc.repo, projectID)
	if err != nil {
		return nil, err
	}
	id, err := export.NewReportID()
	if err != nil {
		return nil, err
	}

	risks := data.risks()
	report := &export.Report{
		ID:          id,
		GeneratedAt: uc.now().UTC(),
		Project:     data.project,
		Dashboard:   risk.BuildDashboard(entries(risks), data.actions(), data.project.Settings.Dashboard, risk.DefaultDashboardTopN),
		Summary:     risk.BuildSummary(entries(risks), data.project.Settings.Bands, risk.DefaultSummaryTopN),
	}

	byComponent := map[model.ComponentID]*export.ComponentReport{}
	for _, c := range data.components {
		report.Components = append(report.Components, export.ComponentReport{Component: c})
	}
	for i := range report.Components {
		byComponent[report.Components[i].Component.ID] = &report.Components[i]
	}
	for _, r := range risks {
		cr := byComponent[r.Component.ID]
		cr.FailureModes = append(cr.FailureModes, export.FailureModeReport{
			FailureMode: r.FailureMode,
			Children:    r.Children,
			Score:       r.Score,
			Band:        r.Band,
			PostRPN:     r.PostRPN,
		})
	}
	return report, nil
}

// Export renders a project report. When an uploader is configured a copy is
// stored in the background.
func (uc *ExportUseCase) Export(ctx context.Context, projectID model.ProjectID, format export.Format) (*ExportResult, error) {
	result, err := uc.render(ctx, projectID, format)
	if err != nil {
		return nil, err
	}

	if uc.uploader != nil {
		async.Dispatch(ctx, "upload_report", func(ctx context.Context) error {
			if _, err := uc.uploader.Upload(ctx, result.FileName, result.ContentType, result.Data); err != nil {
				return goerr.Wrap(err, "failed to upload report",
					goerr.V(ProjectIDKey, projectID),
					goerr.V("file_name", result.FileName))
			}
			return nil
		})
	}
	return result, nil
}

// Upload renders a project report and stores it synchronously, returning its location
func (uc *ExportUseCase) Upload(ctx context.Context, projectID model.ProjectID, format export.Format) (string, error) {
	if uc.uploader == nil {
		return "", goerr.New("export bucket is not configured")
	}
	result, err := uc.render(ctx, projectID, format)
	if err != nil {
		return "", err
	}
	url, err := uc.uploader.Upload(ctx, result.FileName, result.ContentType, result.Data)
	if err != nil {
		return "", goerr.Wrap(err, "failed to upload report", goerr.V(ProjectIDKey, projectID))
	}
	return url, nil
}

func (uc *ExportUseCase) render(ctx context.Context, projectID model.ProjectID, format export.Format) (*ExportResult, error) {
	report, err := uc.BuildReport(ctx, projectID)
	if err != nil {
		return nil, err
	}
	data, err := export.Render(report, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render report",
			goerr.V(ProjectIDKey, projectID),
			goerr.V("format", format))
	}
	return &ExportResult{
		Report:      report,
		Format:      format,
		Data:        data,
		ContentType: format.ContentType(),
		FileName:    report.FileName(format),
	}, nil
}

// Import creates a new project from a YAML document. The whole document is
// validated before anything is written; a failed write removes what was created.
func (uc *ExportUseCase) Import(ctx context.Context, r io.Reader) (*model.Project, error) {
	doc, err := export.ParseDocument(r)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, err.Error())
	}

	settings := uc.defaultSettings.Clone()
	if s := doc.Project.Settings.ToSettings(); s != nil {
		settings = s.Normalize()
		if err := checkSettings(settings); err != nil {
			return nil, goerr.Wrap(err, "invalid settings in document")
		}
	}

	plan, err := planImport(doc, settings)
	if err != nil {
		return nil, err
	}

	project, err := uc.repo.Project().Create(ctx, &model.Project{
		Name:        doc.Project.Name,
		Description: doc.Project.Description,
		Settings:    settings,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}

	if err := uc.writeImport(ctx, project.ID, plan); err != nil {
		if cleanupErr := deleteProjectTree(ctx, uc.repo, project.ID); cleanupErr != nil {
			return nil, goerr.Wrap(err, "failed to import project and to clean up",
				goerr.V(ProjectIDKey, project.ID),
				goerr.V("cleanup_error", cleanupErr.Error()))
		}
		return nil, goerr.Wrap(err, "failed to import project")
	}
	return project, nil
}

type importComponent struct {
	input        ComponentInput
	failureModes []importFailureMode
}

type importFailureMode struct {
	input    FailureModeInput
	causes   []CauseInput
	effects  []EffectInput
	controls []ControlInput
	actions  []ActionInput
}

func planImport(doc *export.Document, settings model.Settings) ([]importComponent, error) {
	scale := settings.RatingScale
	var plan []importComponent

	for ci, cd := range doc.Project.Components {
		comp := importComponent{input: ComponentInput{Name: cd.Name, Function: cd.Function}}
		if err := comp.input.validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid component", goerr.V("component_index", ci))
		}

		for fi, fd := range cd.FailureModes {
			at := []goerr.Option{goerr.V("component", cd.Name), goerr.V("failure_mode_index", fi)}
			fm := importFailureMode{input: FailureModeInput{
				Description: fd.Description,
				ProcessStep: fd.ProcessStep,
				Status:      types.FailureModeStatus(fd.Status),
			}}
			if err := fm.input.normalize(); err != nil {
				return nil, goerr.Wrap(err, "invalid failure mode", at...)
			}

			for _, c := range fd.Causes {
				in := CauseInput{Description: c.Description, Occurrence: c.Occurrence}
				if err := in.validate(scale); err != nil {
					return nil, goerr.Wrap(err, "invalid cause", at...)
				}
				fm.causes = append(fm.causes, in)
			}
			for _, e := range fd.Effects {
				in := EffectInput{
					Description:       e.Description,
					Severity:          e.Severity,
					SeverityPost:      e.SeverityPost,
					OccurrencePost:    e.OccurrencePost,
					DetectionPost:     e.DetectionPost,
					JustificationPre:  e.JustificationPre,
					JustificationPost: e.JustificationPost,
					ActionTaken:       e.ActionTaken,
				}
				if err := in.validate(scale); err != nil {
					return nil, goerr.Wrap(err, "invalid effect", at...)
				}
				fm.effects = append(fm.effects, in)
			}
			for _, c := range fd.Controls {
				in := ControlInput{
					Type:          types.ControlType(c.Type),
					Description:   c.Description,
					Detection:     c.Detection,
					Effectiveness: c.Effectiveness,
				}
				if err := in.validate(scale); err != nil {
					return nil, goerr.Wrap(err, "invalid control", at...)
				}
				fm.controls = append(fm.controls, in)
			}
			for _, a := range fd.Actions {
				due, err := a.ToDueDate()
				if err != nil {
					return nil, goerr.Wrap(ErrInvalidInput, err.Error(), at...)
				}
				in := ActionInput{
					Description: a.Description,
					Owner:       a.Owner,
					DueDate:     due,
					Status:      types.ActionStatus(a.Status),
				}
				if err := in.normalize(); err != nil {
					return nil, goerr.Wrap(err, "invalid action", at...)
				}
				fm.actions = append(fm.actions, in)
			}
			comp.failureModes = append(comp.failureModes, fm)
		}
		plan = append(plan, comp)
	}
	return plan, nil
}

func (uc *ExportUseCase) writeImport(ctx context.Context, projectID model.ProjectID, plan []importComponent) error {
	for _, pc := range plan {
		comp, err := uc.repo.Component().Create(ctx, &model.Component{
			ProjectID: projectID,
			Name:      pc.input.Name,
			Function:  pc.input.Function,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to create component", goerr.V("name", pc.input.Name))
		}

		for _, pf := range pc.failureModes {
			fm, err := uc.repo.FailureMode().Create(ctx, &model.FailureMode{
				ComponentID: comp.ID,
				Description: pf.input.Description,
				ProcessStep: pf.input.ProcessStep,
				Status:      pf.input.Status,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create failure mode", goerr.V(ComponentIDKey, comp.ID))
			}
			if err := uc.writeChildren(ctx, fm.ID, pf); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uc *ExportUseCase) writeChildren(ctx context.Context, fmID model.FailureModeID, pf importFailureMode) error {
	for _, in := range pf.causes {
		if _, err := uc.repo.Cause().Create(ctx, &model.Cause{FailureModeID: fmID, Description: in.Description, Occurrence: in.Occurrence}); err != nil {
			return goerr.Wrap(err, "failed to create cause", goerr.V(FailureModeIDKey, fmID))
		}
	}
	for _, in := range pf.effects {
		effect := &model.Effect{FailureModeID: fmID}
		in.apply(effect)
		if _, err := uc.repo.Effect().Create(ctx, effect); err != nil {
			return goerr.Wrap(err, "failed to create effect", goerr.V(FailureModeIDKey, fmID))
		}
	}
	for _, in := range pf.controls {
		control := &model.Control{
			FailureModeID: fmID,
			Type:          in.Type,
			Description:   in.Description,
			Detection:     in.Detection,
			Effectiveness: in.Effectiveness,
		}
		if _, err := uc.repo.Control().Create(ctx, control); err != nil {
			return goerr.Wrap(err, "failed to create control", goerr.V(FailureModeIDKey, fmID))
		}
	}
	for _, in := range pf.actions {
		action := &model.Action{
			FailureModeID: fmID,
			Description:   in.Description,
			Owner:         in.Owner,
			DueDate:       in.DueDate,
			Status:        in.Status,
		}
		if _, err := uc.repo.Action().Create(ctx, action); err != nil {
			return goerr.Wrap(err, "failed to create action", goerr.V(FailureModeIDKey, fmID))
		}
	}
	return nil
}
