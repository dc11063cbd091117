package http

import "net/http"

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.uc.Project.GetSettings(r.Context(), projectID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newSettingsDTO(settings))
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := s.uc.Project.UpdateSettings(r.Context(), projectID(r), req.toModel())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newSettingsDTO(project.Settings))
}

type validateSettingsResponse struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`
}

// validateSettings checks settings for the project editor without saving them.
// The project must exist so that a stale editor gets a 404.
func (s *Server) validateSettings(w http.ResponseWriter, r *http.Request) {
	if _, err := s.uc.Project.GetProject(r.Context(), projectID(r)); err != nil {
		handleError(w, r, err)
		return
	}

	var req settingsDTO
	if !decodeJSON(w, r, &req) {
		return
	}

	messages := s.uc.Project.ValidateSettings(req.toModel())
	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, r, http.StatusOK, validateSettingsResponse{
		Valid:    len(messages) == 0,
		Messages: messages,
	})
}
