package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/craftlane/storefront/pkg/errors"
)

// apiErrorBody mirrors the error payloads returned by the catalog API:
// either {"message": "..."} or {"errors": [{"field", "message"}, ...]}.
type apiErrorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. Structured message and per-field validation
// bodies are preserved; anything else falls back to a generic error carrying
// the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error.
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", serviceName, resp.StatusCode, err)
	}

	var body apiErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil {
		if len(body.Errors) > 0 {
			msgs := make([]string, len(body.Errors))
			for i, fe := range body.Errors {
				msgs[i] = fe.Field + " " + fe.Message
			}
			return apperrors.InvalidInput(fmt.Sprintf("%s: %s", serviceName, strings.Join(msgs, "; ")))
		}
		if body.Message != "" {
			return mapResponseError(resp.StatusCode, body.Message, serviceName)
		}
	}

	return fmt.Errorf("%s returned status %d: %s", serviceName, resp.StatusCode, string(bodyBytes))
}

// mapResponseError translates the API's HTTP status code and message into an
// AppError that preserves the error semantics on the client side.
func mapResponseError(status int, message, serviceName string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", serviceName, message)

	switch status {
	case http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: qualifiedMsg,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case http.StatusBadRequest:
		return apperrors.InvalidArgument(qualifiedMsg)
	default:
		return &apperrors.AppError{
			Code:    "INTERNAL_ERROR",
			Message: qualifiedMsg,
			Status:  status,
			Err:     apperrors.ErrInternal,
		}
	}
}
