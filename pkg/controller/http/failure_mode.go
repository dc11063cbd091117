package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

func failureModeID(r *http.Request) model.FailureModeID {
	return model.FailureModeID(chi.URLParam(r, "failureModeID"))
}

func (s *Server) listFailureModes(w http.ResponseWriter, r *http.Request) {
	failureModes, err := s.uc.FailureMode.ListFailureModes(r.Context(), componentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]failureModeResponse, 0, len(failureModes))
	for _, fm := range failureModes {
		resp = append(resp, newFailureModeResponse(fm))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"failureModes": resp})
}

func (s *Server) createFailureMode(w http.ResponseWriter, r *http.Request) {
	var req failureModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fm, err := s.uc.FailureMode.CreateFailureMode(r.Context(), componentID(r), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newFailureModeResponse(fm))
}

// getFailureMode returns the failure mode with its children and computed risk
func (s *Server) getFailureMode(w http.ResponseWriter, r *http.Request) {
	fmRisk, err := s.uc.Analysis.GetFailureModeRisk(r.Context(), failureModeID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newFailureModeRiskResponse(fmRisk))
}

func (s *Server) updateFailureMode(w http.ResponseWriter, r *http.Request) {
	id := failureModeID(r)
	current, err := s.uc.FailureMode.GetFailureMode(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := failureModeRequest{
		Description: current.Description,
		ProcessStep: current.ProcessStep,
		Status:      string(current.Status),
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	fm, err := s.uc.FailureMode.UpdateFailureMode(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newFailureModeResponse(fm))
}

func (s *Server) deleteFailureMode(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.FailureMode.DeleteFailureMode(r.Context(), failureModeID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
