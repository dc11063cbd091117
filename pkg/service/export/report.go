package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/risk"
)

const reportIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Report is a rendered snapshot of a project's worksheet and risk summary
type Report struct {
	ID          string
	GeneratedAt time.Time
	Project     *model.Project
	Components  []ComponentReport
	Dashboard   risk.Dashboard
	Summary     risk.Summary
}

type ComponentReport struct {
	Component    *model.Component
	FailureModes []FailureModeReport
}

type FailureModeReport struct {
	FailureMode *model.FailureMode
	Children    *model.FailureModeChildren
	Score       risk.Score
	Band        model.Band
	PostRPN     int
}

// NewReportID returns a short random identifier printed on every export
func NewReportID() (string, error) {
	id, err := gonanoid.Generate(reportIDAlphabet, 10)
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate report ID")
	}
	return id, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// FileName returns the download name of the report in format
func (r *Report) FileName(format Format) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(r.Project.Name, "-"), "-")
	if name == "" {
		name = "project"
	}
	return fmt.Sprintf("fmea-%s-%s-%s%s", name, r.GeneratedAt.Format("20060102"), r.ID, format.Extension())
}

// Render encodes the report in format
func Render(r *Report, format Format) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return RenderXLSX(r)
	case FormatPDF:
		return RenderPDF(r)
	case FormatYAML:
		return EncodeYAML(NewDocument(r))
	}
	return nil, goerr.Wrap(ErrUnsupportedFormat, "cannot render report", goerr.V("format", format))
}

func joinCauses(causes []*model.Cause) string {
	lines := make([]string, 0, len(causes))
	for _, c := range causes {
		lines = append(lines, fmt.Sprintf("%s (O=%d)", c.Description, c.Occurrence))
	}
	return strings.Join(lines, "\n")
}

func joinEffects(effects []*model.Effect) string {
	lines := make([]string, 0, len(effects))
	for _, e := range effects {
		lines = append(lines, fmt.Sprintf("%s (S=%d)", e.Description, e.Severity))
	}
	return strings.Join(lines, "\n")
}

func joinControls(controls []*model.Control) string {
	lines := make([]string, 0, len(controls))
	for _, c := range controls {
		lines = append(lines, fmt.Sprintf("[%s] %s (D=%d)", c.Type, c.Description, c.Detection))
	}
	return strings.Join(lines, "\n")
}

func joinActions(actions []*model.Action) string {
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		line := fmt.Sprintf("%s [%s]", a.Description, a.Status)
		if a.Owner != "" {
			line += " @" + a.Owner
		}
		if a.DueDate != nil {
			line += " due " + a.DueDate.Format("2006-01-02")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func children(fm FailureModeReport) *model.FailureModeChildren {
	if fm.Children == nil {
		return &model.FailureModeChildren{}
	}
	return fm.Children
}
