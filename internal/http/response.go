package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"expensetracker/internal/core"
)

// errorBody is the JSON error envelope. Message is set for single-cause
// failures, Errors for transport validation with one message per field.
type errorBody struct {
	Status    int               `json:"status"`
	Message   string            `json:"message,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

// writeError maps the error taxonomy to HTTP statuses at this single point:
// field errors and business-rule violations are 400, a missing record is
// 404, and anything else is a logged 500 that exposes no internal detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	now := time.Now().UTC()

	var fe core.FieldErrors
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status:    http.StatusBadRequest,
			Errors:    fe,
			Timestamp: now,
		})
		return
	}

	var nf core.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Status:    http.StatusNotFound,
			Message:   nf.Error(),
			Timestamp: now,
		})
		return
	}

	var inv core.InvalidInputError
	if errors.As(err, &inv) {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Status:    http.StatusBadRequest,
			Message:   inv.Error(),
			Timestamp: now,
		})
		return
	}

	slog.ErrorContext(r.Context(), "Unexpected error",
		"error", err, "method", r.Method, "url", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Status:    http.StatusInternalServerError,
		Message:   "An unexpected error occurred",
		Timestamp: now,
	})
}

// badRequest writes a 400 with a single message, for malformed parameters
// that never reach the service.
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		Status:    http.StatusBadRequest,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}
