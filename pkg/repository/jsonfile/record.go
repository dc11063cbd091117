package jsonfile

import (
	"time"

	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
)

const fileVersion = 1

type fileRecord struct {
	Version      int                 `json:"version"`
	SavedAt      time.Time           `json:"saved_at"`
	Projects     []projectRecord     `json:"projects"`
	Components   []componentRecord   `json:"components"`
	FailureModes []failureModeRecord `json:"failure_modes"`
	Causes       []causeRecord       `json:"causes"`
	Effects      []effectRecord      `json:"effects"`
	Controls     []controlRecord     `json:"controls"`
	Actions      []actionRecord      `json:"actions"`
}

type bandRecord struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color"`
}

type projectRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	RatingScale int          `json:"rating_scale"`
	Bands       []bandRecord `json:"bands"`
	Medium      int          `json:"dashboard_medium"`
	High        int          `json:"dashboard_high"`
	Critical    int          `json:"dashboard_critical"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type componentRecord struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Function  string    `json:"function,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type failureModeRecord struct {
	ID          string    `json:"id"`
	ComponentID string    `json:"component_id"`
	Description string    `json:"description"`
	ProcessStep string    `json:"process_step,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type causeRecord struct {
	ID            string    `json:"id"`
	FailureModeID string    `json:"failure_mode_id"`
	Description   string    `json:"description"`
	Occurrence    int       `json:"occurrence"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type effectRecord struct {
	ID                string    `json:"id"`
	FailureModeID     string    `json:"failure_mode_id"`
	Description       string    `json:"description"`
	Severity          int       `json:"severity"`
	SeverityPost      *int      `json:"severity_post,omitempty"`
	OccurrencePost    *int      `json:"occurrence_post,omitempty"`
	DetectionPost     *int      `json:"detection_post,omitempty"`
	JustificationPre  string    `json:"justification_pre,omitempty"`
	JustificationPost string    `json:"justification_post,omitempty"`
	ActionTaken       string    `json:"action_taken,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type controlRecord struct {
	ID            string    `json:"id"`
	FailureModeID string    `json:"failure_mode_id"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Detection     int       `json:"detection"`
	Effectiveness int       `json:"effectiveness,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type actionRecord struct {
	ID            string     `json:"id"`
	FailureModeID string     `json:"failure_mode_id"`
	Description   string     `json:"description"`
	Owner         string     `json:"owner,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toFileRecord(snap *memory.Snapshot) *fileRecord {
	f := &fileRecord{
		Version:      fileVersion,
		SavedAt:      time.Now().UTC(),
		Projects:     make([]projectRecord, 0, len(snap.Projects)),
		Components:   make([]componentRecord, 0, len(snap.Components)),
		FailureModes: make([]failureModeRecord, 0, len(snap.FailureModes)),
		Causes:       make([]causeRecord, 0, len(snap.Causes)),
		Effects:      make([]effectRecord, 0, len(snap.Effects)),
		Controls:     make([]controlRecord, 0, len(snap.Controls)),
		Actions:      make([]actionRecord, 0, len(snap.Actions)),
	}

	for _, p := range snap.Projects {
		bands := make([]bandRecord, 0, len(p.Settings.Bands))
		for _, b := range p.Settings.Bands {
			bands = append(bands, bandRecord(b))
		}
		f.Projects = append(f.Projects, projectRecord{
			ID:          string(p.ID),
			Name:        p.Name,
			Description: p.Description,
			RatingScale: int(p.Settings.RatingScale),
			Bands:       bands,
			Medium:      p.Settings.Dashboard.Medium,
			High:        p.Settings.Dashboard.High,
			Critical:    p.Settings.Dashboard.Critical,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		})
	}
	for _, c := range snap.Components {
		f.Components = append(f.Components, componentRecord{
			ID:        string(c.ID),
			ProjectID: string(c.ProjectID),
			Name:      c.Name,
			Function:  c.Function,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	for _, fm := range snap.FailureModes {
		f.FailureModes = append(f.FailureModes, failureModeRecord{
			ID:          string(fm.ID),
			ComponentID: string(fm.ComponentID),
			Description: fm.Description,
			ProcessStep: fm.ProcessStep,
			Status:      fm.Status.String(),
			CreatedAt:   fm.CreatedAt,
			UpdatedAt:   fm.UpdatedAt,
		})
	}
	for _, c := range snap.Causes {
		f.Causes = append(f.Causes, causeRecord{
			ID:            string(c.ID),
			FailureModeID: string(c.FailureModeID),
			Description:   c.Description,
			Occurrence:    c.Occurrence,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	for _, e := range snap.Effects {
		f.Effects = append(f.Effects, effectRecord{
			ID:                string(e.ID),
			FailureModeID:     string(e.FailureModeID),
			Description:       e.Description,
			Severity:          e.Severity,
			SeverityPost:      e.SeverityPost,
			OccurrencePost:    e.OccurrencePost,
			DetectionPost:     e.DetectionPost,
			JustificationPre:  e.JustificationPre,
			JustificationPost: e.JustificationPost,
			ActionTaken:       e.ActionTaken,
			CreatedAt:         e.CreatedAt,
			UpdatedAt:         e.UpdatedAt,
		})
	}
	for _, c := range snap.Controls {
		f.Controls = append(f.Controls, controlRecord{
			ID:            string(c.ID),
			FailureModeID: string(c.FailureModeID),
			Type:          c.Type.String(),
			Description:   c.Description,
			Detection:     c.Detection,
			Effectiveness: c.Effectiveness,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	for _, a := range snap.Actions {
		f.Actions = append(f.Actions, actionRecord{
			ID:            string(a.ID),
			FailureModeID: string(a.FailureModeID),
			Description:   a.Description,
			Owner:         a.Owner,
			DueDate:       a.DueDate,
			Status:        a.Status.String(),
			CreatedAt:     a.CreatedAt,
			UpdatedAt:     a.UpdatedAt,
		})
	}

	return f
}

func (f *fileRecord) toSnapshot() *memory.Snapshot {
	snap := &memory.Snapshot{}

	for _, p := range f.Projects {
		bands := make([]model.Band, 0, len(p.Bands))
		for _, b := range p.Bands {
			bands = append(bands, model.Band(b))
		}
		snap.Projects = append(snap.Projects, &model.Project{
			ID:          model.ProjectID(p.ID),
			Name:        p.Name,
			Description: p.Description,
			Settings: model.Settings{
				RatingScale: types.RatingScale(p.RatingScale),
				Bands:       bands,
				Dashboard: model.DashboardCutoffs{
					Medium:   p.Medium,
					High:     p.High,
					Critical: p.Critical,
				},
			},
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	for _, c := range f.Components {
		snap.Components = append(snap.Components, &model.Component{
			ID:        model.ComponentID(c.ID),
			ProjectID: model.ProjectID(c.ProjectID),
			Name:      c.Name,
			Function:  c.Function,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	for _, fm := range f.FailureModes {
		snap.FailureModes = append(snap.FailureModes, &model.FailureMode{
			ID:          model.FailureModeID(fm.ID),
			ComponentID: model.ComponentID(fm.ComponentID),
			Description: fm.Description,
			ProcessStep: fm.ProcessStep,
			Status:      types.FailureModeStatus(fm.Status),
			CreatedAt:   fm.CreatedAt,
			UpdatedAt:   fm.UpdatedAt,
		})
	}
	for _, c := range f.Causes {
		snap.Causes = append(snap.Causes, &model.Cause{
			ID:            model.CauseID(c.ID),
			FailureModeID: model.FailureModeID(c.FailureModeID),
			Description:   c.Description,
			Occurrence:    c.Occurrence,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	for _, e := range f.Effects {
		snap.Effects = append(snap.Effects, &model.Effect{
			ID:                model.EffectID(e.ID),
			FailureModeID:     model.FailureModeID(e.FailureModeID),
			Description:       e.Description,
			Severity:          e.Severity,
			SeverityPost:      e.SeverityPost,
			OccurrencePost:    e.OccurrencePost,
			DetectionPost:     e.DetectionPost,
			JustificationPre:  e.JustificationPre,
			JustificationPost: e.JustificationPost,
			ActionTaken:       e.ActionTaken,
			CreatedAt:         e.CreatedAt,
			UpdatedAt:         e.UpdatedAt,
		})
	}
	for _, c := range f.Controls {
		snap.Controls = append(snap.Controls, &model.Control{
			ID:            model.ControlID(c.ID),
			FailureModeID: model.FailureModeID(c.FailureModeID),
			Type:          types.ControlType(c.Type),
			Description:   c.Description,
			Detection:     c.Detection,
			Effectiveness: c.Effectiveness,
			CreatedAt:     c.CreatedAt,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	for _, a := range f.Actions {
		snap.Actions = append(snap.Actions, &model.Action{
			ID:            model.ActionID(a.ID),
			FailureModeID: model.FailureModeID(a.FailureModeID),
			Description:   a.Description,
			Owner:         a.Owner,
			DueDate:       a.DueDate,
			Status:        types.ActionStatus(a.Status),
			CreatedAt:     a.CreatedAt,
			UpdatedAt:     a.UpdatedAt,
		})
	}

	return snap
}
