package http

import (
	"net/http"
	"strconv"

	"github.com/secmon-lab/fmea/pkg/domain/risk"
	"github.com/secmon-lab/fmea/pkg/domain/types"
	"github.com/secmon-lab/fmea/pkg/usecase"
)

// queryInt reads a non-negative integer query parameter, using def when absent
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func (s *Server) listProjectRisks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := usecase.RiskFilter{
		Band:   q.Get("band"),
		Status: types.FailureModeStatus(q.Get("status")),
	}

	risks, err := s.uc.Analysis.ListProjectRisks(r.Context(), projectID(r), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]failureModeRiskResponse, 0, len(risks))
	for _, fmRisk := range risks {
		resp = append(resp, newFailureModeRiskResponse(fmRisk))
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"failureModes": resp})
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.uc.Analysis.Tree(r.Context(), projectID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newTreeResponse(tree))
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	top, ok := queryInt(r, "top", risk.DefaultDashboardTopN)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "top must be a non-negative integer")
		return
	}

	dashboard, err := s.uc.Analysis.Dashboard(r.Context(), projectID(r), top)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newDashboardResponse(dashboard))
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	top, ok := queryInt(r, "top", risk.DefaultSummaryTopN)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "top must be a non-negative integer")
		return
	}

	summary, err := s.uc.Analysis.Summary(r.Context(), projectID(r), top)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newSummaryResponse(summary))
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("rpn") == "" {
		writeError(w, r, http.StatusBadRequest, "rpn is required")
		return
	}
	rpn, ok := queryInt(r, "rpn", 0)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "rpn must be a non-negative integer")
		return
	}

	band, err := s.uc.Analysis.Classify(r.Context(), projectID(r), rpn)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"rpn": rpn, "band": bandDTO(band)})
}
