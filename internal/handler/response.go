package handler

// RESPONSE HELPERS:
// Every handler funnels its output through these two functions, so the UI
// always receives the same shapes:
//
//	success: the payload itself
//	failure: {"error": "validation_error", "message": "NIC is required"}
//
// The mapping from domain error to HTTP status lives here and nowhere else —
// the service layer returns apperror sentinels and never sees a status code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/apperror"
)

// ErrorResponse is the standard error body returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`           // machine-readable type, e.g. "not_found"
	Message string `json:"message"`         // human-readable, shown in the UI message area
	Field   string `json:"field,omitempty"` // offending form field, when known
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body; once Encode writes, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates a domain error into the HTTP response.
//
// errors.Is walks the wrap chain, so a service error like
//
//	fmt.Errorf("adding record: %w", apperror.ValidationFailed(...))
//
// still matches its sentinel here.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrPrecondition):
			// Refused destructive or export operations: missing confirmation,
			// empty export set, empty field selection.
			status = http.StatusPreconditionFailed
			errorType = "precondition_failed"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
		})
		return
	}

	// Unknown error — generic 500. The raw message may carry file paths, so
	// it is logged upstream but never sent to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
