// Package handler contains the HTTP layer: request decoding, service
// calls, and response encoding. Handlers stay thin — all saga logic
// lives in the service package.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/astralearn/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API
// endpoints, regardless of status code.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable type (e.g. "not_found")
	Message string `json:"message"` // human-readable description
}

// writeJSON sends a JSON response with the given status code. Headers
// and status must go out before the body: once Encode writes, the
// response line is committed.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it.
//
// The service layer returns apperror sentinels; this is the single
// place where they become status codes:
//
//	ErrValidation   → 400 (bad input)
//	ErrConflict     → 400 (duplicate username/email — the client treats
//	                        both as "fix your form", so no 409)
//	ErrUnauthorized → 401
//	ErrNotFound     → 404
//	ErrAnalysis     → 500 (keeps its message: "Failed to <operation>"
//	                        tells the client which saga step died)
//
// Anything else is an unknown 500 with a generic message — raw errors
// can leak SQL or file paths.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			errorType = "conflict"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrAnalysis):
			errorType = "analysis_failed"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON parses the request body into dst, translating malformed
// JSON into a validation error so clients get a 400, not a 500.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "Invalid request body")
	}
	return nil
}

// pathID parses a numeric path parameter. chi guarantees the parameter
// exists for matched routes; a non-numeric value is the client's fault.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(name, "Invalid "+name)
	}
	return id, nil
}
