package usecase

import (
	"fmt"

	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/risk"
)

// ValidateSettings returns the problems of settings as user facing messages.
// An empty result means the settings can be saved.
func ValidateSettings(settings model.Settings) []string {
	msgs := risk.ValidateBands(settings.Bands, settings.RatingScale.Normalize())

	d := settings.Dashboard
	if d != (model.DashboardCutoffs{}) {
		if d.Medium < 1 {
			msgs = append(msgs, fmt.Sprintf("dashboard medium cutoff must be at least 1, got %d", d.Medium))
		}
		if d.High <= d.Medium {
			msgs = append(msgs, fmt.Sprintf("dashboard high cutoff (%d) must be greater than medium cutoff (%d)", d.High, d.Medium))
		}
		if d.Critical <= d.High {
			msgs = append(msgs, fmt.Sprintf("dashboard critical cutoff (%d) must be greater than high cutoff (%d)", d.Critical, d.High))
		}
	}
	return msgs
}

func checkSettings(settings model.Settings) error {
	if msgs := ValidateSettings(settings); len(msgs) > 0 {
		return &SettingsError{Messages: msgs}
	}
	return nil
}
