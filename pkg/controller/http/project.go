package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/fmea/pkg/domain/model"
)

// maxImportSize bounds YAML documents posted to the import endpoint
const maxImportSize = 10 << 20

func projectID(r *http.Request) model.ProjectID {
	return model.ProjectID(chi.URLParam(r, "projectID"))
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.uc.Project.ListProjects(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, newProjectResponse(p))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"projects": resp})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var settings *model.Settings
	if req.Settings != nil {
		v := req.Settings.toModel()
		settings = &v
	}

	project, err := s.uc.Project.CreateProject(r.Context(), projectInput(req), settings)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newProjectResponse(project))
}

func (s *Server) importProject(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportSize)
	project, err := s.uc.Export.Import(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, newProjectResponse(project))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.uc.Project.GetProject(r.Context(), projectID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newProjectResponse(project))
}

// updateProject applies the body over the stored name and description.
// Settings have their own endpoint and are rejected here.
func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id := projectID(r)
	current, err := s.uc.Project.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	req := projectRequest{Name: current.Name, Description: current.Description}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Settings != nil {
		writeError(w, r, http.StatusBadRequest, "settings must be updated with PUT /api/projects/{projectID}/settings")
		return
	}

	project, err := s.uc.Project.UpdateProject(r.Context(), id, projectInput(req))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newProjectResponse(project))
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Project.DeleteProject(r.Context(), projectID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
