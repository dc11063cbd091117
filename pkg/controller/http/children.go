package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

func (s *Server) addCause(w http.ResponseWriter, r *http.Request) {
	var req causeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cause, err := s.uc.FailureMode.AddCause(r.Context(), failureModeID(r), usecase.CauseInput(req))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newCauseResponse(cause))
}

func (s *Server) updateCause(w http.ResponseWriter, r *http.Request) {
	id := model.CauseID(chi.URLParam(r, "causeID"))
	current, err := s.uc.FailureMode.GetCause(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := causeRequest{Description: current.Description, Occurrence: current.Occurrence}
	if !decodeJSON(w, r, &req) {
		return
	}
	cause, err := s.uc.FailureMode.UpdateCause(r.Context(), id, usecase.CauseInput(req))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newCauseResponse(cause))
}

func (s *Server) deleteCause(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.FailureMode.DeleteCause(r.Context(), model.CauseID(chi.URLParam(r, "causeID"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addEffect(w http.ResponseWriter, r *http.Request) {
	var req effectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	effect, err := s.uc.FailureMode.AddEffect(r.Context(), failureModeID(r), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newEffectResponse(effect))
}

// updateEffect merges the body over the stored effect; an explicit null
// clears a post mitigation rating.
func (s *Server) updateEffect(w http.ResponseWriter, r *http.Request) {
	id := model.EffectID(chi.URLParam(r, "effectID"))
	current, err := s.uc.FailureMode.GetEffect(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := effectRequest{
		Description:       current.Description,
		Severity:          current.Severity,
		SeverityPost:      current.SeverityPost,
		OccurrencePost:    current.OccurrencePost,
		DetectionPost:     current.DetectionPost,
		JustificationPre:  current.JustificationPre,
		JustificationPost: current.JustificationPost,
		ActionTaken:       current.ActionTaken,
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	effect, err := s.uc.FailureMode.UpdateEffect(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newEffectResponse(effect))
}

func (s *Server) deleteEffect(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.FailureMode.DeleteEffect(r.Context(), model.EffectID(chi.URLParam(r, "effectID"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addControl(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	control, err := s.uc.FailureMode.AddControl(r.Context(), failureModeID(r), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newControlResponse(control))
}

func (s *Server) updateControl(w http.ResponseWriter, r *http.Request) {
	id := model.ControlID(chi.URLParam(r, "controlID"))
	current, err := s.uc.FailureMode.GetControl(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := controlRequest{
		Type:          string(current.Type),
		Description:   current.Description,
		Detection:     current.Detection,
		Effectiveness: current.Effectiveness,
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	control, err := s.uc.FailureMode.UpdateControl(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newControlResponse(control))
}

func (s *Server) deleteControl(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.FailureMode.DeleteControl(r.Context(), model.ControlID(chi.URLParam(r, "controlID"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	action, err := s.uc.FailureMode.AddAction(r.Context(), failureModeID(r), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newActionResponse(action))
}

func (s *Server) updateAction(w http.ResponseWriter, r *http.Request) {
	id := model.ActionID(chi.URLParam(r, "actionID"))
	current, err := s.uc.FailureMode.GetAction(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := actionRequest{
		Description: current.Description,
		Owner:       current.Owner,
		Status:      string(current.Status),
	}
	if current.DueDate != nil {
		d := current.DueDate.Format(dateLayout)
		req.DueDate = &d
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	action, err := s.uc.FailureMode.UpdateAction(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newActionResponse(action))
}

func (s *Server) deleteAction(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.FailureMode.DeleteAction(r.Context(), model.ActionID(chi.URLParam(r, "actionID"))); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
