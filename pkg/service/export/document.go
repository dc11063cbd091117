package export

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is the version written to and accepted from YAML documents
const DocumentVersion = 1

var ErrInvalidDocument = goerr.New("invalid project document")

// Document is the portable YAML form of a project tree. Computed values
// (rpn, band) are written for readers and ignored on import.
type Document struct {
	Version  int             `yaml:"version"`
	ReportID string          `yaml:"report_id,omitempty"`
	Exported *time.Time      `yaml:"exported_at,omitempty"`
	Project  ProjectDocument `yaml:"project"`
}

type ProjectDocument struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Settings    *SettingsDocument   `yaml:"settings,omitempty"`
	Components  []ComponentDocument `yaml:"components,omitempty"`
}

type SettingsDocument struct {
	RatingScale int                `yaml:"rating_scale"`
	Bands       []BandDocument     `yaml:"bands,omitempty"`
	Dashboard   *DashboardDocument `yaml:"dashboard,omitempty"`
}

type BandDocument struct {
	Label string `yaml:"label"`
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Color string `yaml:"color,omitempty"`
}

type DashboardDocument struct {
	Medium   int `yaml:"medium"`
	High     int `yaml:"high"`
	Critical int `yaml:"critical"`
}

type ComponentDocument struct {
	Name         string                `yaml:"name"`
	Function     string                `yaml:"function,omitempty"`
	FailureModes []FailureModeDocument `yaml:"failure_modes,omitempty"`
}

type FailureModeDocument struct {
	Description string            `yaml:"description"`
	ProcessStep string            `yaml:"process_step,omitempty"`
	Status      string            `yaml:"status,omitempty"`
	RPN         int               `yaml:"rpn,omitempty"`
	Band        string            `yaml:"band,omitempty"`
	Causes      []CauseDocument   `yaml:"causes,omitempty"`
	Effects     []EffectDocument  `yaml:"effects,omitempty"`
	Controls    []ControlDocument `yaml:"controls,omitempty"`
	Actions     []ActionDocument  `yaml:"actions,omitempty"`
}

type CauseDocument struct {
	Description string `yaml:"description"`
	Occurrence  int    `yaml:"occurrence"`
}

type EffectDocument struct {
	Description       string `yaml:"description"`
	Severity          int    `yaml:"severity"`
	SeverityPost      *int   `yaml:"severity_post,omitempty"`
	OccurrencePost    *int   `yaml:"occurrence_post,omitempty"`
	DetectionPost     *int   `yaml:"detection_post,omitempty"`
	JustificationPre  string `yaml:"justification_pre,omitempty"`
	JustificationPost string `yaml:"justification_post,omitempty"`
	ActionTaken       string `yaml:"action_taken,omitempty"`
}

type ControlDocument struct {
	Type          string `yaml:"type"`
	Description   string `yaml:"description"`
	Detection     int    `yaml:"detection"`
	Effectiveness int    `yaml:"effectiveness,omitempty"`
}

type ActionDocument struct {
	Description string `yaml:"description"`
	Owner       string `yaml:"owner,omitempty"`
	DueDate     string `yaml:"due_date,omitempty"`
	Status      string `yaml:"status,omitempty"`
}

const dueDateLayout = "2006-01-02"

// NewDocument converts a report into its YAML document
func NewDocument(r *Report) *Document {
	exported := r.GeneratedAt
	doc := &Document{
		Version:  DocumentVersion,
		ReportID: r.ID,
		Exported: &exported,
		Project: ProjectDocument{
			Name:        r.Project.Name,
			Description: r.Project.Description,
			Settings:    newSettingsDocument(r.Project.Settings),
		},
	}

	for _, c := range r.Components {
		cd := ComponentDocument{
			Name:     c.Component.Name,
			Function: c.Component.Function,
		}
		for _, fm := range c.FailureModes {
			cd.FailureModes = append(cd.FailureModes, newFailureModeDocument(fm))
		}
		doc.Project.Components = append(doc.Project.Components, cd)
	}
	return doc
}

func newSettingsDocument(s model.Settings) *SettingsDocument {
	doc := &SettingsDocument{
		RatingScale: int(s.RatingScale),
		Dashboard: &DashboardDocument{
			Medium:   s.Dashboard.Medium,
			High:     s.Dashboard.High,
			Critical: s.Dashboard.Critical,
		},
	}
	for _, b := range s.Bands {
		doc.Bands = append(doc.Bands, BandDocument(b))
	}
	return doc
}

func newFailureModeDocument(fm FailureModeReport) FailureModeDocument {
	ch := children(fm)
	doc := FailureModeDocument{
		Description: fm.FailureMode.Description,
		ProcessStep: fm.FailureMode.ProcessStep,
		Status:      string(fm.FailureMode.Status),
		RPN:         fm.Score.RPN,
		Band:        fm.Band.Label,
	}
	for _, c := range ch.Causes {
		doc.Causes = append(doc.Causes, CauseDocument{Description: c.Description, Occurrence: c.Occurrence})
	}
	for _, e := range ch.Effects {
		doc.Effects = append(doc.Effects, EffectDocument{
			Description:       e.Description,
			Severity:          e.Severity,
			SeverityPost:      e.SeverityPost,
			OccurrencePost:    e.OccurrencePost,
			DetectionPost:     e.DetectionPost,
			JustificationPre:  e.JustificationPre,
			JustificationPost: e.JustificationPost,
			ActionTaken:       e.ActionTaken,
		})
	}
	for _, c := range ch.Controls {
		doc.Controls = append(doc.Controls, ControlDocument{
			Type:          string(c.Type),
			Description:   c.Description,
			Detection:     c.Detection,
			Effectiveness: c.Effectiveness,
		})
	}
	for _, a := range ch.Actions {
		ad := ActionDocument{
			Description: a.Description,
			Owner:       a.Owner,
			Status:      string(a.Status),
		}
		if a.DueDate != nil {
			ad.DueDate = a.DueDate.Format(dueDateLayout)
		}
		doc.Actions = append(doc.Actions, ad)
	}
	return doc
}

// EncodeYAML marshals doc with two-space indentation
func EncodeYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, goerr.Wrap(err, "failed to encode YAML document")
	}
	if err := enc.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush YAML document")
	}
	return buf.Bytes(), nil
}

// ParseDocument decodes a YAML document, rejecting unknown fields and other versions.
// A missing version is read as the current one.
func ParseDocument(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, goerr.Wrap(ErrInvalidDocument, "empty document")
		}
		return nil, goerr.Wrap(ErrInvalidDocument, "failed to decode YAML", goerr.V("error", err.Error()))
	}

	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Version != DocumentVersion {
		return nil, goerr.Wrap(ErrInvalidDocument, "unsupported document version", goerr.V("version", doc.Version))
	}
	if doc.Project.Name == "" {
		return nil, goerr.Wrap(ErrInvalidDocument, "project name is required")
	}
	return &doc, nil
}

// ToSettings returns the settings described by the document, or nil if absent
func (d *SettingsDocument) ToSettings() *model.Settings {
	if d == nil {
		return nil
	}
	s := model.Settings{RatingScale: types.RatingScale(d.RatingScale)}
	for _, b := range d.Bands {
		s.Bands = append(s.Bands, model.Band(b))
	}
	if d.Dashboard != nil {
		s.Dashboard = model.DashboardCutoffs{
			Medium:   d.Dashboard.Medium,
			High:     d.Dashboard.High,
			Critical: d.Dashboard.Critical,
		}
	}
	return &s
}

// ToDueDate parses the due date; empty means no due date
func (d ActionDocument) ToDueDate() (*time.Time, error) {
	if d.DueDate == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, d.DueDate)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidDocument, "invalid due date", goerr.V("due_date", d.DueDate))
	}
	return &t, nil
}
