package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/boxswap/boxswap-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// ErrorResponse is the JSON body for all error replies.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError mirrors domain.FieldError for the wire.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// writeError maps a service error to an HTTP status. Business-rule conflicts
// share 409; authorization and code failures share 403 so a probing client
// cannot tell a wrong code from a wrong role.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		fields := make([]FieldError, len(vErr.Errors))
		for i, fe := range vErr.Errors {
			fields[i] = FieldError{Field: fe.Field, Message: fe.Message}
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidCode):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrItemConflict),
		errors.Is(err, domain.ErrStateConflict),
		errors.Is(err, domain.ErrNoCapacity),
		errors.Is(err, domain.ErrInvalidCancellation):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDependencyUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "service temporarily unavailable"})
	case errors.Is(err, context.Canceled):
		// Client went away, nothing useful to write.
	default:
		log.ErrorContext(r.Context(), "unhandled error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
