package orcid

import (
	"errors"
	"fmt"
)

// Common errors returned by the ORCID client.
var (
	// ErrNotFound indicates the record was not found.
	ErrNotFound = errors.New("not found in ORCID")

	// ErrAuthError indicates an authentication error (missing/invalid/insufficient token).
	ErrAuthError = errors.New("ORCID authentication error")

	// ErrRateLimited indicates the rate limit has been exceeded.
	ErrRateLimited = errors.New("ORCID rate limit exceeded")

	// ErrAPIError indicates a general API error.
	ErrAPIError = errors.New("ORCID API error")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ORCID")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from ORCID")

	// ErrNoIdentifier indicates no ORCID iD is associated with the session.
	ErrNoIdentifier = errors.New("no ORCID iD configured")

	// ErrNoAccessToken indicates no bearer token is associated with the session.
	ErrNoAccessToken = errors.New("no ORCID access token configured")

	// ErrInvalidID indicates a malformed ORCID iD or a bad check digit.
	ErrInvalidID = errors.New("invalid ORCID iD")

	// ErrInvalidScope indicates a write scope that cannot be mapped to an endpoint.
	ErrInvalidScope = errors.New("invalid ORCID write scope")

	// ErrReadOnly indicates a write attempted through a read-only session.
	ErrReadOnly = errors.New("session is read-only")
)

// APIError represents a non-success response from the ORCID API.
type APIError struct {
	StatusCode int
	Code       string // "not_found" or "api_error"
	Message    string
	ORCID      string // for context in record-related errors
}

func (e *APIError) Error() string {
	if e.ORCID != "" {
		return fmt.Sprintf("ORCID API error (status %d, code %s): %s (iD: %s)", e.StatusCode, e.Code, e.Message, e.ORCID)
	}
	return fmt.Sprintf("ORCID API error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrAPIError
}

// IsNotFound returns true if the error indicates a record was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 || apiErr.Code == "not_found"
	}
	return false
}

// IsAuthError returns true if the error indicates an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) || errors.Is(err, ErrNoAccessToken) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
