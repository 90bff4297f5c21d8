package http

import (
	"fmt"
	"net/http"
	"time"

	"facturation/internal/export"
	"facturation/internal/report"
)

// handleExport streams the CSV for the current filter. The trailer
// carries the annual collected total of the same filtered subset the
// rows come from.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r, time.Now().Year())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := s.svc.ListDocuments(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	filtered := report.Filter(docs, spec)
	stats := report.Aggregate(filtered)
	csv := export.CSV(filtered, stats.CollectedTotal, spec.Year)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(spec.Year)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
