package http

import (
	"log/slog"
	"net/http"
	"time"

	"facturation/internal/report"
)

// handleDashboard computes every dashboard figure for the requested
// filter. Responses are cached per filter spec; any write clears the
// cache, so a hit is always consistent with the store.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	spec, err := parseFilterSpec(r, time.Now().Year())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if cached, ok := s.statsCache.Get(spec.Key()); ok {
		slog.DebugContext(r.Context(), "Dashboard served from cache", "key", spec.Key())
		writeJSON(w, http.StatusOK, cached)
		return
	}

	docs, _, err := s.svc.Snapshot(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	filtered := report.Filter(docs, spec)
	stats := report.Aggregate(filtered)
	resp := toDashboardResponse(spec, report.AvailableYears(docs), stats)

	s.statsCache.Set(spec.Key(), resp)
	writeJSON(w, http.StatusOK, resp)
}
