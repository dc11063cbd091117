package http

import (
	"fmt"
	"net/http"

	"github.com/secmon-lab/fmea/pkg/service/export"
	"github.com/secmon-lab/fmea/pkg/utils/safe"
)

func (s *Server) exportProject(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(export.FormatXLSX)
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.uc.Export.Export(r.Context(), projectID(r), format)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("X-Report-ID", result.Report.ID)
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, result.Data)
}
