// Package risk computes Risk Priority Numbers for failure modes and classifies
// them into bands. All functions are pure and safe for concurrent use.
package risk

import (
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// Score is the representative (pre-mitigation) risk of a failure mode together
// with the factors of the (cause, effect) pair that produced it.
type Score struct {
	RPN        int
	Severity   int
	Occurrence int
	Detection  int
}

// zeroScore is returned when a failure mode has no cause or no effect.
var zeroScore = Score{RPN: 0, Severity: 0, Occurrence: 0, Detection: types.WorstDetection}

// Detection returns the best (lowest) detection rating among controls, or
// types.WorstDetection when there is none.
func Detection(controls []*model.Control) int {
	if len(controls) == 0 {
		return types.WorstDetection
	}
	detection := controls[0].Detection
	for _, c := range controls[1:] {
		if c.Detection < detection {
			detection = c.Detection
		}
	}
	return detection
}

// ComputeRepresentativeRisk returns the maximum RPN over every (cause, effect)
// pair. The first pair reaching the maximum wins ties.
func ComputeRepresentativeRisk(causes []*model.Cause, effects []*model.Effect, controls []*model.Control) Score {
	if len(causes) == 0 || len(effects) == 0 {
		return zeroScore
	}

	detection := Detection(controls)

	best := Score{Detection: detection}
	found := false
	for _, c := range causes {
		for _, e := range effects {
			candidate := e.Severity * c.Occurrence * detection
			if !found || candidate > best.RPN {
				best = Score{
					RPN:        candidate,
					Severity:   e.Severity,
					Occurrence: c.Occurrence,
					Detection:  detection,
				}
				found = true
			}
		}
	}

	return best
}

// ComputePostMitigationRisk returns SeverityPost × OccurrencePost × DetectionPost,
// or 0 when any of them has not been assessed.
func ComputePostMitigationRisk(effect *model.Effect) int {
	if effect == nil || effect.SeverityPost == nil || effect.OccurrencePost == nil || effect.DetectionPost == nil {
		return 0
	}
	return *effect.SeverityPost * *effect.OccurrencePost * *effect.DetectionPost
}

// MaxPostMitigationRisk returns the highest post-mitigation RPN among effects.
func MaxPostMitigationRisk(effects []*model.Effect) int {
	var maxRPN int
	for _, e := range effects {
		if rpn := ComputePostMitigationRisk(e); rpn > maxRPN {
			maxRPN = rpn
		}
	}
	return maxRPN
}

// ForChildren is a shorthand for ComputeRepresentativeRisk over a failure mode's children.
func ForChildren(children *model.FailureModeChildren) Score {
	if children == nil {
		return zeroScore
	}
	return ComputeRepresentativeRisk(children.Causes, children.Effects, children.Controls)
}
