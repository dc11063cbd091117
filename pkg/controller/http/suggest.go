package http

import (
	"net/http"

	"github.com/secmon-lab/fmea/pkg/domain/model"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

// suggest never fails because of the assistant itself. When it is disabled or
// errors, the response carries an empty list.
func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	var req suggestionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	suggestions, err := s.uc.Suggest.Suggest(r.Context(), usecase.SuggestRequest{
		Kind:           types.SuggestionKind(req.Kind),
		ProjectID:      model.ProjectID(req.ProjectID),
		ComponentID:    model.ComponentID(req.ComponentID),
		FailureModeID:  model.FailureModeID(req.FailureModeID),
		Hint:           req.Hint,
		MaxSuggestions: req.MaxSuggestions,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := suggestionResponse{
		Enabled:     s.uc.Suggest.Enabled(),
		Suggestions: make([]suggestionDTO, 0, len(suggestions)),
	}
	for _, sg := range suggestions {
		resp.Suggestions = append(resp.Suggestions, suggestionDTO(*sg))
	}
	writeJSON(w, r, http.StatusOK, resp)
}
