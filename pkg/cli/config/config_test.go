package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/fmea/pkg/cli/config"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/repository/memory"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmea.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestAppConfig_Configure(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		settings, err := config.NewAppConfigForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, settings).Equal(model.DefaultSettings())
	})

	t.Run("five point scale", func(t *testing.T) {
		path := writeConfig(t, `
rating_scale = 5

[[bands]]
label = "Acceptable"
min = 1
max = 49
color = "#38A169"

[[bands]]
label = "Unacceptable"
min = 50
max = 250
color = "#E53E3E"

[dashboard]
medium = 30
high = 60
critical = 100
`)
		settings, err := config.NewAppConfigForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, settings.RatingScale).Equal(types.RatingScale5)
		gt.Array(t, settings.Bands).Length(2).Required()
		gt.Value(t, settings.Bands[1].Label).Equal("Unacceptable")
		gt.Value(t, settings.Dashboard.Critical).Equal(100)
	})

	t.Run("omitted parts use defaults", func(t *testing.T) {
		path := writeConfig(t, "rating_scale = 10\n")
		settings, err := config.NewAppConfigForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, settings.Bands).Equal(model.DefaultBands())
		gt.Value(t, settings.Dashboard).Equal(model.DefaultDashboardCutoffs())
	})

	t.Run("bands with a gap are rejected", func(t *testing.T) {
		path := writeConfig(t, `
[[bands]]
label = "Low"
min = 1
max = 50

[[bands]]
label = "High"
min = 60
max = 1000
`)
		_, err := config.NewAppConfigForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		path := writeConfig(t, "rating_scales = 10\n")
		_, err := config.NewAppConfigForTest(path).Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewAppConfigForTest(filepath.Join(t.TempDir(), "none.toml")).Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}

func TestFile_Validate(t *testing.T) {
	path := writeConfig(t, `
rating_scale = 7

[[bands]]
label = "All"
min = 1
max = 1000
`)
	file, err := config.LoadFile(path)
	gt.NoError(t, err).Required()
	msgs := file.Validate()
	gt.Array(t, msgs).Length(1).Required()
	gt.String(t, msgs[0]).Contains("rating scale")
}

func TestRepository_Configure(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest(config.BackendMemory, "").Configure(t.Context())
		gt.NoError(t, err).Required()
		_, ok := repo.(*memory.Memory)
		gt.Bool(t, ok).True()
		gt.NoError(t, repo.Close())
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.json")
		repo, err := config.NewRepositoryForTest(config.BackendJSON, path).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore requires a project", func(t *testing.T) {
		_, err := config.NewRepositoryForTest(config.BackendFirestore, "").Configure(t.Context())
		gt.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("mysql", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrInvalidBackend)
	})
}

func TestLogger_Configure(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	t.Run("writes to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fmea.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()
		logging.Default().Debug("hello", "count", 3)
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.String(t, string(data)).Contains(`"msg":"hello"`)
		gt.String(t, string(data)).Contains(`"level":"DEBUG"`)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "console", "stderr").Configure()
		gt.Error(t, err).Is(config.ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stderr").Configure()
		gt.Error(t, err)
	})
}

func TestOptionalServices(t *testing.T) {
	t.Run("storage disabled without bucket", func(t *testing.T) {
		uploader, err := config.NewStorageForTest("").Configure(t.Context())
		gt.NoError(t, err)
		gt.Bool(t, uploader == nil).True()
	})

	t.Run("sentry disabled without dsn", func(t *testing.T) {
		cfg := config.NewSentryForTest("")
		gt.Bool(t, cfg.Enabled()).False()
		flush, err := cfg.Configure("dev")
		gt.NoError(t, err).Required()
		flush()
	})
}
