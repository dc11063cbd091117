package risk

import (
	"math"
	"sort"

	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

const (
	DefaultDashboardTopN = 10
	DefaultSummaryTopN   = 5
)

// Dashboard band labels
const (
	LabelLow      = "Low"
	LabelMedium   = "Medium"
	LabelHigh     = "High"
	LabelCritical = "Critical"
)

var dashboardColors = map[string]string{
	LabelLow:      "#38A169",
	LabelMedium:   "#D69E2E",
	LabelHigh:     "#DD6B20",
	LabelCritical: "#E53E3E",
}

// Entry is a failure mode with its representative score
type Entry struct {
	FailureMode *model.FailureMode
	Component   *model.Component
	Score       Score
	PostRPN     int
}

// NewEntry scores a failure mode from its children
func NewEntry(component *model.Component, fm *model.FailureMode, children *model.FailureModeChildren) Entry {
	entry := Entry{
		FailureMode: fm,
		Component:   component,
		Score:       ForChildren(children),
	}
	if children != nil {
		entry.PostRPN = MaxPostMitigationRisk(children.Effects)
	}
	return entry
}

// Bucket is one slice of a risk distribution chart
type Bucket struct {
	Label      string
	Color      string
	Count      int
	Percentage int
}

// Dashboard is the aggregate report shown on the project dashboard
type Dashboard struct {
	TotalFailureModes int
	HighRiskModes     int
	CriticalModes     int
	AverageRPN        int
	OpenActions       int
	CompletedActions  int
	RiskDistribution  []Bucket
	TopRisks          []Entry
}

// Summary is the report of the summary tab, distributed over the project's own bands
type Summary struct {
	TotalFailureModes int
	Unscored          int
	AverageRPN        int
	Distribution      []Bucket
	TopRisks          []Entry
}

// BuildDashboard aggregates entries and actions using the dashboard cutoffs.
// topN <= 0 keeps every entry in TopRisks.
func BuildDashboard(entries []Entry, actions []*model.Action, cutoffs model.DashboardCutoffs, topN int) Dashboard {
	d := Dashboard{
		TotalFailureModes: len(entries),
		AverageRPN:        AverageRPN(entries),
		TopRisks:          TopRisks(entries, topN),
	}

	counts := map[string]int{}
	for _, e := range entries {
		rpn := e.Score.RPN
		if rpn >= cutoffs.High {
			d.HighRiskModes++
		}
		if rpn >= cutoffs.Critical {
			d.CriticalModes++
		}
		counts[dashboardLabel(rpn, cutoffs)]++
	}

	for _, label := range []string{LabelLow, LabelMedium, LabelHigh, LabelCritical} {
		d.RiskDistribution = append(d.RiskDistribution, Bucket{
			Label:      label,
			Color:      dashboardColors[label],
			Count:      counts[label],
			Percentage: percentage(counts[label], len(entries)),
		})
	}

	for _, a := range actions {
		switch a.Status {
		case types.ActionStatusOpen:
			d.OpenActions++
		case types.ActionStatusCompleted:
			d.CompletedActions++
		}
	}

	return d
}

func dashboardLabel(rpn int, cutoffs model.DashboardCutoffs) string {
	switch {
	case rpn >= cutoffs.Critical:
		return LabelCritical
	case rpn >= cutoffs.High:
		return LabelHigh
	case rpn >= cutoffs.Medium:
		return LabelMedium
	default:
		return LabelLow
	}
}

// BuildSummary distributes scored entries over the configured bands.
// Entries with RPN 0 (no cause or no effect yet) are counted as Unscored and
// left out of the distribution.
func BuildSummary(entries []Entry, bands []model.Band, topN int) Summary {
	s := Summary{
		TotalFailureModes: len(entries),
		AverageRPN:        AverageRPN(entries),
		TopRisks:          TopRisks(entries, topN),
	}

	counts := make([]int, len(bands))
	scored := 0
	for _, e := range entries {
		if e.Score.RPN == 0 {
			s.Unscored++
			continue
		}
		scored++
		band := ClassifyBand(e.Score.RPN, bands)
		for i := range bands {
			if bands[i].Label == band.Label {
				counts[i]++
				break
			}
		}
	}

	for i, b := range bands {
		s.Distribution = append(s.Distribution, Bucket{
			Label:      b.Label,
			Color:      b.Color,
			Count:      counts[i],
			Percentage: percentage(counts[i], scored),
		})
	}

	return s
}

// AverageRPN returns the rounded mean representative RPN, or 0 for no entries
func AverageRPN(entries []Entry) int {
	if len(entries) == 0 {
		return 0
	}
	var sum int
	for _, e := range entries {
		sum += e.Score.RPN
	}
	return int(math.Round(float64(sum) / float64(len(entries))))
}

// TopRisks returns entries ordered by RPN descending, keeping input order for
// equal RPNs, truncated to n. n <= 0 returns every entry.
func TopRisks(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score.RPN > sorted[j].Score.RPN
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}
