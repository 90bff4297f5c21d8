package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"facturation/internal/core"
	"facturation/internal/log"
	"facturation/internal/report"
	"facturation/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps service/store errors onto HTTP statuses:
// not-found to 404, validation sentinels to 400, anything else to 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			log.FieldMethod, r.Method, log.FieldPath, r.URL.Path, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidAmount,
		core.ErrInvalidTaxRate,
		core.ErrInvalidType,
		core.ErrInvalidStatus,
		core.ErrEmptyNumber,
		core.ErrEmptyName,
		core.ErrMissingClient,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseFilterSpec reads the dashboard filter from query parameters.
// Missing or unparsable year defaults to defaultYear; type and status
// must be valid labels when present.
func parseFilterSpec(r *http.Request, defaultYear int) (report.FilterSpec, error) {
	q := r.URL.Query()

	spec := report.FilterSpec{Year: defaultYear, Query: q.Get("q")}
	if raw := q.Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return report.FilterSpec{}, errors.New("invalid year")
		}
		spec.Year = y
	}
	if raw := q.Get("type"); raw != "" {
		t, err := core.ParseDocumentType(raw)
		if err != nil {
			return report.FilterSpec{}, err
		}
		spec.Type = t
	}
	if raw := q.Get("status"); raw != "" {
		st, err := core.ParseDocumentStatus(raw)
		if err != nil {
			return report.FilterSpec{}, err
		}
		spec.Status = st
	}
	return spec, nil
}
