package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/cli"
	"github.com/secmon-lab/fmea/pkg/cli/config"
	"github.com/secmon-lab/fmea/pkg/repository/jsonfile"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestRun_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeFile(t, "fmea.toml", `
rating_scale = 10

[[bands]]
label = "Low"
min = 1
max = 99

[[bands]]
label = "High"
min = 100
max = 1000
`)
		err := cli.Run(context.Background(), []string{"fmea", "validate", "--config", path}, "test")
		gt.NoError(t, err)
	})

	t.Run("overlapping bands", func(t *testing.T) {
		path := writeFile(t, "fmea.toml", `
[[bands]]
label = "Low"
min = 1
max = 120

[[bands]]
label = "High"
min = 100
max = 1000
`)
		err := cli.Run(context.Background(), []string{"fmea", "validate", "--config", path}, "test")
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("config is required", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{"fmea", "validate"}, "test")
		gt.Error(t, err)
	})
}

const document = `version: 1
project:
  name: Pump
  components:
    - name: Seal
      function: Keep fluid inside
      failure_modes:
        - description: Leak
          causes:
            - description: Wear
              occurrence: 6
          effects:
            - description: Fluid loss
              severity: 8
          controls:
            - type: detection
              description: Pressure test
              detection: 3
`

func TestRun_ImportAndExport(t *testing.T) {
	ctx := context.Background()
	dataFile := filepath.Join(t.TempDir(), "data.json")
	docPath := writeFile(t, "pump.yaml", document)

	err := cli.Run(ctx, []string{"fmea", "import",
		"--repository", "json",
		"--data-file", dataFile,
		"--input", docPath,
	}, "test")
	gt.NoError(t, err).Required()

	repo, err := jsonfile.New(ctx, dataFile)
	gt.NoError(t, err).Required()
	uc := usecase.New(repo)
	projects, err := uc.Project.ListProjects(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, projects).Length(1).Required()
	projectID := string(projects[0].ID)

	risks, err := uc.Analysis.ListProjectRisks(ctx, projects[0].ID, usecase.RiskFilter{})
	gt.NoError(t, err).Required()
	gt.Array(t, risks).Length(1).Required()
	gt.Value(t, risks[0].Score.RPN).Equal(144)
	gt.NoError(t, repo.Close()).Required()

	t.Run("yaml to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.yaml")
		err := cli.Run(ctx, []string{"fmea", "export",
			"--repository", "json",
			"--data-file", dataFile,
			"--project", projectID,
			"--format", "yaml",
			"--output", out,
		}, "test")
		gt.NoError(t, err).Required()

		data, err := os.ReadFile(out)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains("name: Pump")
		gt.String(t, string(data)).Contains("rpn: 144")
	})

	t.Run("unknown project", func(t *testing.T) {
		err := cli.Run(ctx, []string{"fmea", "export",
			"--repository", "json",
			"--data-file", dataFile,
			"--project", "missing",
			"--output", filepath.Join(t.TempDir(), "x.xlsx"),
		}, "test")
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := cli.Run(ctx, []string{"fmea", "export",
			"--repository", "json",
			"--data-file", dataFile,
			"--project", projectID,
			"--format", "docx",
		}, "test")
		gt.Error(t, err)
	})
}
