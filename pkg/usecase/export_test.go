package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/service/export"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

type mockUploader struct {
	mu       sync.Mutex
	names    []string
	uploaded chan string
}

func newMockUploader() *mockUploader {
	return &mockUploader{uploaded: make(chan string, 4)}
}

func (m *mockUploader) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	m.names = append(m.names, name)
	m.mu.Unlock()
	m.uploaded <- name
	return "gs://bucket/" + name, nil
}

var fixedNow = func() time.Time {
	return time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)
}

func TestExportUseCase_BuildReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, usecase.WithClock(fixedNow))

	r, err := f.uc.Export.BuildReport(ctx, f.project.ID)
	gt.NoError(t, err).Required()

	gt.Value(t, len(r.ID)).Equal(10)
	gt.Value(t, r.GeneratedAt).Equal(fixedNow())
	gt.Array(t, r.Components).Length(1).Required()
	gt.Array(t, r.Components[0].FailureModes).Length(2).Required()
	gt.Value(t, r.Components[0].FailureModes[0].Score.RPN).Equal(144)
	gt.Value(t, r.Components[0].FailureModes[0].Band.Label).Equal("High")
	gt.Value(t, r.Dashboard.TotalFailureModes).Equal(2)
	gt.Value(t, r.Summary.Unscored).Equal(1)

	_, err = f.uc.Export.BuildReport(ctx, "missing")
	gt.Error(t, err).Is(usecase.ErrProjectNotFound)
}

func TestExportUseCase_Export(t *testing.T) {
	ctx := context.Background()

	for _, format := range []export.Format{export.FormatXLSX, export.FormatPDF, export.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			f := newFixture(t, usecase.WithClock(fixedNow))
			result, err := f.uc.Export.Export(ctx, f.project.ID, format)
			gt.NoError(t, err).Required()

			gt.Number(t, len(result.Data)).Greater(0)
			gt.Value(t, result.ContentType).Equal(format.ContentType())
			gt.String(t, result.FileName).Contains("fmea-Pump-20260405-")
			gt.Bool(t, strings.HasSuffix(result.FileName, format.Extension())).True()
		})
	}

	t.Run("uploads in background", func(t *testing.T) {
		uploader := newMockUploader()
		f := newFixture(t, usecase.WithUploader(uploader))

		result, err := f.uc.Export.Export(ctx, f.project.ID, export.FormatYAML)
		gt.NoError(t, err).Required()

		select {
		case name := <-uploader.uploaded:
			gt.Value(t, name).Equal(result.FileName)
		case <-time.After(5 * time.Second):
			t.Fatal("report was not uploaded")
		}
	})

	t.Run("synchronous upload", func(t *testing.T) {
		uploader := newMockUploader()
		f := newFixture(t, usecase.WithUploader(uploader))

		url, err := f.uc.Export.Upload(ctx, f.project.ID, export.FormatPDF)
		gt.NoError(t, err).Required()
		gt.String(t, url).Contains("gs://bucket/fmea-Pump-")
	})

	t.Run("upload without bucket", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Export.Upload(ctx, f.project.ID, export.FormatPDF)
		gt.Value(t, err).NotNil()
	})
}

func TestExportUseCase_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip through YAML", func(t *testing.T) {
		f := newFixture(t)
		result, err := f.uc.Export.Export(ctx, f.project.ID, export.FormatYAML)
		gt.NoError(t, err).Required()

		imported, err := f.uc.Export.Import(ctx, bytes.NewReader(result.Data))
		gt.NoError(t, err).Required()
		gt.Value(t, imported.ID).NotEqual(f.project.ID)
		gt.Value(t, imported.Name).Equal("Pump")
		gt.Value(t, imported.Settings).Equal(f.project.Settings)

		original, err := f.uc.Analysis.Tree(ctx, f.project.ID)
		gt.NoError(t, err).Required()
		copied, err := f.uc.Analysis.Tree(ctx, imported.ID)
		gt.NoError(t, err).Required()

		gt.Array(t, copied.Components).Length(len(original.Components)).Required()
		for i, c := range original.Components {
			gt.Value(t, copied.Components[i].Component.Name).Equal(c.Component.Name)
			gt.Array(t, copied.Components[i].FailureModes).Length(len(c.FailureModes)).Required()
			for j, fm := range c.FailureModes {
				got := copied.Components[i].FailureModes[j]
				gt.Value(t, got.FailureMode.Description).Equal(fm.FailureMode.Description)
				gt.Value(t, got.FailureMode.Status).Equal(fm.FailureMode.Status)
				gt.Value(t, got.Score).Equal(fm.Score)
				gt.Value(t, got.PostRPN).Equal(fm.PostRPN)
				gt.Array(t, got.Children.Actions).Length(len(fm.Children.Actions))
			}
		}
	})

	t.Run("invalid rating writes nothing", func(t *testing.T) {
		f := newFixture(t)
		doc := `
project:
  name: Broken
  components:
    - name: Valve
      failure_modes:
        - description: Stuck
          causes:
            - description: Dirt
              occurrence: 12
`
		_, err := f.uc.Export.Import(ctx, strings.NewReader(doc))
		gt.Error(t, err).Is(usecase.ErrInvalidRating)

		projects, err := f.uc.Project.ListProjects(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, projects).Length(1)
	})

	t.Run("settings from the document", func(t *testing.T) {
		f := newFixture(t)
		doc := `
version: 1
project:
  name: Five
  settings:
    rating_scale: 5
    bands:
      - {label: Low, min: 1, max: 100}
      - {label: High, min: 101, max: 250}
  components:
    - name: Valve
      failure_modes:
        - description: Stuck
          status: closed
          effects:
            - {description: No flow, severity: 5}
          causes:
            - {description: Dirt, occurrence: 5}
          actions:
            - {description: Filter, due_date: "2026-05-01"}
`
		p, err := f.uc.Export.Import(ctx, strings.NewReader(doc))
		gt.NoError(t, err).Required()
		gt.Value(t, int(p.Settings.RatingScale)).Equal(5)
		gt.Value(t, p.Settings.Dashboard.High).Equal(200)

		risks, err := f.uc.Analysis.ListProjectRisks(ctx, p.ID, usecase.RiskFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(1).Required()
		// 5 x 5 x no control (10)
		gt.Value(t, risks[0].Score.RPN).Equal(250)
		gt.Value(t, risks[0].Band.Label).Equal("High")
		gt.Value(t, risks[0].Children.Actions[0].DueDate.Format("2006-01-02")).Equal("2026-05-01")
	})

	t.Run("invalid documents", func(t *testing.T) {
		f := newFixture(t)
		for name, doc := range map[string]string{
			"not yaml":      "{{",
			"unknown field": "project:\n  name: x\n  color: red\n",
			"bad status":    "project:\n  name: x\n  components:\n    - name: c\n      failure_modes:\n        - description: d\n          status: gone\n",
			"bad due date":  "project:\n  name: x\n  components:\n    - name: c\n      failure_modes:\n        - description: d\n          actions:\n            - description: a\n              due_date: soon\n",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := f.uc.Export.Import(ctx, strings.NewReader(doc))
				gt.Error(t, err).Is(usecase.ErrInvalidInput)
			})
		}

		_, err := f.uc.Export.Import(ctx, strings.NewReader("project:\n  name: x\n  settings:\n    rating_scale: 7\n"))
		gt.Error(t, err).Is(usecase.ErrInvalidSettings)
	})
}
