package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fmea/pkg/service/export"
	"github.com/secmon-lab/fmea/pkg/usecase"
	"github.com/secmon-lab/fmea/pkg/utils/errutil"
	"github.com/secmon-lab/fmea/pkg/utils/logging"
	"github.com/secmon-lab/fmea/pkg/utils/safe"
)

const maxBodySize = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string, messages ...string) {
	writeJSON(w, r, status, errorResponse{Error: msg, Messages: messages})
}

// decodeJSON reads a JSON body into v and validates it. The body may be
// decoded over a pre-filled v to apply a partial update.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "request body is required")
			return false
		}
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, validationMessage(fe))
			}
			writeError(w, r, http.StatusBadRequest, "validation failed", msgs...)
			return false
		}
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to validate request"), http.StatusInternalServerError)
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	_, field, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		field = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// handleError maps use case errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var settingsErr *usecase.SettingsError
	if errors.As(err, &settingsErr) {
		writeError(w, r, http.StatusUnprocessableEntity, "invalid settings", settingsErr.Messages...)
		return
	}

	var status int
	switch {
	case errors.Is(err, usecase.ErrProjectNotFound),
		errors.Is(err, usecase.ErrComponentNotFound),
		errors.Is(err, usecase.ErrFailureModeNotFound),
		errors.Is(err, usecase.ErrCauseNotFound),
		errors.Is(err, usecase.ErrEffectNotFound),
		errors.Is(err, usecase.ErrControlNotFound),
		errors.Is(err, usecase.ErrActionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidRating):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, export.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	logging.From(r.Context()).Info("request rejected", "status", status, "error", err.Error())
	writeError(w, r, status, err.Error())
}
