package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

func componentID(r *http.Request) model.ComponentID {
	return model.ComponentID(chi.URLParam(r, "componentID"))
}

func (s *Server) listComponents(w http.ResponseWriter, r *http.Request) {
	components, err := s.uc.Component.ListComponents(r.Context(), projectID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]componentResponse, 0, len(components))
	for _, c := range components {
		resp = append(resp, newComponentResponse(c))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"components": resp})
}

func (s *Server) createComponent(w http.ResponseWriter, r *http.Request) {
	var req componentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	component, err := s.uc.Component.CreateComponent(r.Context(), projectID(r), usecase.ComponentInput(req))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newComponentResponse(component))
}

func (s *Server) getComponent(w http.ResponseWriter, r *http.Request) {
	component, err := s.uc.Component.GetComponent(r.Context(), componentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newComponentResponse(component))
}

func (s *Server) updateComponent(w http.ResponseWriter, r *http.Request) {
	id := componentID(r)
	current, err := s.uc.Component.GetComponent(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := componentRequest{Name: current.Name, Function: current.Function}
	if !decodeJSON(w, r, &req) {
		return
	}

	component, err := s.uc.Component.UpdateComponent(r.Context(), id, usecase.ComponentInput(req))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newComponentResponse(component))
}

func (s *Server) deleteComponent(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Component.DeleteComponent(r.Context(), componentID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
