package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// ProjectID is a UUID-based identifier for Project
type ProjectID string

// NewProjectID generates a new UUID v4 ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// Project is the top-level FMEA worksheet. It owns Components and carries the
// risk settings used to validate ratings and classify RPNs.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	Settings    Settings
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Band is a named RPN range used for color coding and filtering
type Band struct {
	Label string
	Min   int
	Max   int
	Color string
}

// Contains reports whether rpn falls inside [Min, Max]
func (b Band) Contains(rpn int) bool {
	return rpn >= b.Min && rpn <= b.Max
}

// DashboardCutoffs are the lower bounds used by the dashboard metrics.
// They are independent from Settings.Bands.
type DashboardCutoffs struct {
	Medium   int
	High     int
	Critical int
}

// Settings holds the per-project risk scale configuration
type Settings struct {
	RatingScale types.RatingScale
	Bands       []Band
	Dashboard   DashboardCutoffs
}

// Clone returns a deep copy of the settings
func (s Settings) Clone() Settings {
	bands := make([]Band, len(s.Bands))
	copy(bands, s.Bands)
	return Settings{
		RatingScale: s.RatingScale,
		Bands:       bands,
		Dashboard:   s.Dashboard,
	}
}

// Normalize fills zero values with defaults
func (s Settings) Normalize() Settings {
	out := s.Clone()
	out.RatingScale = out.RatingScale.Normalize()
	if len(out.Bands) == 0 {
		out.Bands = DefaultBands()
	}
	if out.Dashboard == (DashboardCutoffs{}) {
		out.Dashboard = DefaultDashboardCutoffs()
	}
	return out
}

// DefaultBands returns the four bands used when a project does not configure its own
func DefaultBands() []Band {
	return []Band{
		{Label: "Low", Min: 1, Max: 69, Color: "#38A169"},
		{Label: "Medium", Min: 70, Max: 99, Color: "#D69E2E"},
		{Label: "High", Min: 100, Max: 150, Color: "#DD6B20"},
		{Label: "Critical", Min: 151, Max: 1000, Color: "#E53E3E"},
	}
}

// DefaultDashboardCutoffs returns the cutoffs of the dashboard metrics
func DefaultDashboardCutoffs() DashboardCutoffs {
	return DashboardCutoffs{
		Medium:   100,
		High:     200,
		Critical: 300,
	}
}

// DefaultSettings returns the settings applied to projects created without explicit settings
func DefaultSettings() Settings {
	return Settings{
		RatingScale: types.DefaultRatingScale,
		Bands:       DefaultBands(),
		Dashboard:   DefaultDashboardCutoffs(),
	}
}
