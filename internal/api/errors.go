package api

import (
	"errors"
	"fmt"
)

// AuthError indicates the server rejected the session token (401).
// By the time the caller sees it the unauthorized hook has already
// torn the session down.
type AuthError struct {
	Method string
	Path   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (401) on %s %s", e.Method, e.Path)
}

// APIError is any non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d) on %s %s: %s",
			e.StatusCode, e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("api error (%d) on %s %s", e.StatusCode, e.Method, e.Path)
}

// IsAuthError reports whether err (or any error in its chain) is an
// AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is
// not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ErrorMessage returns the server-provided message carried by err, or
// the fallback when none is available.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
