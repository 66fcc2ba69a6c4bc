package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/johnwards/formbuilder/internal/domain"
)

// Error categories.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryUnauthorized    = "UNAUTHORIZED"
	CategoryInternalError   = "INTERNAL_ERROR"
)

// Error is the JSON error envelope returned by every endpoint.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single problem within an Error.
type ErrorDetail struct {
	Message string `json:"message"`
	In      string `json:"in,omitempty"`
}

// NewNotFoundError creates a 404 error with the OBJECT_NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryObjectNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// NewConflictError creates a 409 error with the CONFLICT category.
func NewConflictError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryConflict,
	}
}

// NewUnauthorizedError creates a 401 error with the UNAUTHORIZED category.
func NewUnauthorizedError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryUnauthorized,
	}
}

// NewInternalError creates a 500 error with the INTERNAL_ERROR category.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}

// WriteDomainError maps err onto the error envelope. notFound is the message
// used for ErrNotFound. Unclassified errors are logged and reported as 500
// without their text.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	corrID := CorrelationID(r.Context())

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]ErrorDetail, len(verr.Problems))
		for i, p := range verr.Problems {
			details[i] = ErrorDetail{Message: p.Message, In: p.Field}
		}
		WriteError(w, http.StatusBadRequest, NewValidationError("Invalid input", corrID, details))
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, NewNotFoundError(notFound, corrID))
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, http.StatusConflict, NewConflictError(err.Error(), corrID))
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, NewUnauthorizedError("Invalid or missing credentials", corrID))
	default:
		msg := "Internal Server Error"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "Storage did not respond in time"
		}
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"correlation_id", corrID,
		)
		WriteError(w, http.StatusInternalServerError, NewInternalError(msg, corrID))
	}
}
