package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
)

// Handle logs the error with msg and reports it to Sentry when a client is
// configured. It returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err)
	report(ctx, err)

	return err
}

// HandleHTTP logs the error and writes a JSON error response. 5xx errors are
// also reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, "HTTP error", err, slog.Int("status", statusCode))
	if statusCode >= http.StatusInternalServerError {
		report(ctx, err)
	}

	WriteJSONError(w, statusCode, err.Error())
}

// WriteJSONError writes {"error": message} with statusCode
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func logError(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		args := append([]any{
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		}, attrs...)
		logger.Error(msg, args...)
		return
	}

	logger.Error(msg, append([]any{"error", err.Error()}, attrs...)...)
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) {
			scope.SetContext("values", sentry.Context(ge.Values()))
		}
		hub.CaptureException(err)
	})
}
