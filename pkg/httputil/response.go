package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	apperrors "github.com/craftlane/storefront/pkg/errors"
	"github.com/craftlane/storefront/pkg/logger"
	"github.com/craftlane/storefront/pkg/validator"
)

// ErrorMessage is the JSON body returned for plain request failures.
type ErrorMessage struct {
	Message string `json:"message"`
}

// FieldError is a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationFailure is the JSON body returned when request validation fails.
// Entries are sorted by field name so responses are deterministic.
type ValidationFailure struct {
	Errors []FieldError `json:"errors"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response based on the error type. AppError
// statuses and messages pass through; anything else collapses to an opaque
// 500 so storage internals never leak to the caller. Internal errors are
// logged with the request-scoped logger when one is present in context.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Status != http.StatusInternalServerError {
		status = appErr.Status
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorMessage{Message: message})
}

// WriteValidationError writes a 400 response carrying one entry per offending
// field. Non-validation errors fall back to a plain message body.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		fields := valErr.Fields()
		out := make([]FieldError, 0, len(fields))
		for field, msg := range fields {
			out = append(out, FieldError{Field: field, Message: msg})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })

		WriteJSON(w, http.StatusBadRequest, ValidationFailure{Errors: out})
		return
	}

	WriteJSON(w, http.StatusBadRequest, ErrorMessage{Message: err.Error()})
}

// ParseID validates that the given path parameter is a decimal integer.
// If it is not, a 400 response is written and false is returned, signaling
// the caller to return early.
func ParseID(w http.ResponseWriter, param string) (int64, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorMessage{Message: "invalid id: " + param})
		return 0, false
	}
	return id, true
}
