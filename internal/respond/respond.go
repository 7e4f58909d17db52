// Package respond writes JSON responses and the API's error bodies.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/focusflow/internal/schema"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// JSON writes v with the given status. A nil pointer is written as null.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err, "status", status)
	}
}

func OK(w http.ResponseWriter, v any) {
	JSON(w, http.StatusOK, v)
}

func Created(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

func BadRequest(w http.ResponseWriter, field, message string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Message: message, Field: field})
}

func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "Internal Server Error")
}

// Invalid writes a 400 for validation failures, or a 413 for a body larger
// than http.MaxBytesReader allowed, and reports whether err was either.
func Invalid(w http.ResponseWriter, err error) bool {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return true
	}

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	BadRequest(w, verr.Field, verr.Message)
	return true
}
