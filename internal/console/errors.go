package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-success response from the backend. Type carries the
// backend's machine-readable error code (e.g. "user_already_exists") so
// callers branch on structure rather than message text.
type APIError struct {
	HTTPStatus int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (HTTP %d): %s", e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("API error (HTTP %d)", e.HTTPStatus)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{HTTPStatus: status}
	var parsed struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		apiErr.Type = parsed.Type
		apiErr.Message = parsed.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// IsConflict reports whether err is a backend "already exists" response.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusConflict
}

// IsUserExists reports whether err is the duplicate-identity conflict
// returned by user creation.
func IsUserExists(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == "user_already_exists"
}
