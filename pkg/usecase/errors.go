package usecase

import (
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/domain/interfaces"
	"github.com/secmon-lab/fmea/pkg/domain/types"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrProjectNotFound     = errors.New("project not found")
	ErrComponentNotFound   = errors.New("component not found")
	ErrFailureModeNotFound = errors.New("failure mode not found")
	ErrCauseNotFound       = errors.New("cause not found")
	ErrEffectNotFound      = errors.New("effect not found")
	ErrControlNotFound     = errors.New("control not found")
	ErrActionNotFound      = errors.New("action not found")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidRating   = types.ErrInvalidRating
	ErrInvalidSettings = errors.New("invalid settings")
)

// Context keys for error values
const (
	ProjectIDKey     = "project_id"
	ComponentIDKey   = "component_id"
	FailureModeIDKey = "failure_mode_id"
	CauseIDKey       = "cause_id"
	EffectIDKey      = "effect_id"
	ControlIDKey     = "control_id"
	ActionIDKey      = "action_id"
)

// SettingsError is returned when settings are rejected. Messages are meant
// to be shown to the user as is.
type SettingsError struct {
	Messages []string
}

func (e *SettingsError) Error() string {
	return "invalid settings: " + strings.Join(e.Messages, "; ")
}

func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

// notFound converts a repository not-found error into sentinel; other errors
// are wrapped with msg.
func notFound(err, sentinel error, msg string, opts ...goerr.Option) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(sentinel, sentinel.Error(), opts...)
	}
	return goerr.Wrap(err, msg, opts...)
}
