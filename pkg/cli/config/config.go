package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/usecase"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// AppConfig holds the --config flag. The TOML file sets the risk settings
// given to projects created without their own.
type AppConfig struct {
	path string
}

func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML file with default project settings",
			Sources:     cli.EnvVars("FMEA_CONFIG"),
			Destination: &a.path,
		},
	}
}

func (a *AppConfig) Path() string {
	return a.path
}

// Configure returns the default project settings. Without --config the
// built-in defaults are used; a file with invalid settings is rejected.
func (a *AppConfig) Configure() (model.Settings, error) {
	if a.path == "" {
		return model.DefaultSettings(), nil
	}

	file, err := LoadFile(a.path)
	if err != nil {
		return model.Settings{}, err
	}
	settings := file.Settings()
	if msgs := usecase.ValidateSettings(settings); len(msgs) > 0 {
		return model.Settings{}, goerr.Wrap(ErrInvalidConfig, strings.Join(msgs, "; "),
			goerr.V(ConfigPathKey, a.path),
			goerr.V(MessagesKey, msgs))
	}

	logging.Default().Info("Loaded default project settings",
		"path", a.path,
		"rating_scale", int(settings.RatingScale),
		"bands", len(settings.Bands))
	return settings, nil
}

// File is the layout of the TOML configuration file
type File struct {
	RatingScale int            `toml:"rating_scale"`
	Bands       []BandConfig   `toml:"bands"`
	Dashboard   *DashboardFile `toml:"dashboard"`
}

type BandConfig struct {
	Label string `toml:"label"`
	Min   int    `toml:"min"`
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

type DashboardFile struct {
	Medium   int `toml:"medium"`
	High     int `toml:"high"`
	Critical int `toml:"critical"`
}

// LoadFile reads and parses a TOML configuration file without validating it
func LoadFile(path string) (*File, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "failed to read config file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config: "+err.Error(), goerr.V(ConfigPathKey, path))
	}
	return &file, nil
}

// Settings converts the file to project settings, filling omitted parts with defaults
func (f *File) Settings() model.Settings {
	s := model.Settings{RatingScale: types.RatingScale(f.RatingScale)}
	for _, b := range f.Bands {
		s.Bands = append(s.Bands, model.Band(b))
	}
	if f.Dashboard != nil {
		s.Dashboard = model.DashboardCutoffs(*f.Dashboard)
	}
	return s.Normalize()
}

// Validate returns every problem of the settings in the file
func (f *File) Validate() []string {
	return usecase.ValidateSettings(f.Settings())
}
