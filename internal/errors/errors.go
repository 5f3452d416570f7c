package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMissingCredentials is returned when the login payload lacks a username or password.
	ErrMissingCredentials = errors.New("Username and password are required")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	// Both cases share one error so callers cannot enumerate users.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrNoToken is returned when the Authorization header is absent or not Bearer-scheme.
	ErrNoToken = errors.New("Access denied. No token provided.")
	// ErrInvalidToken is returned when a Bearer token is present but fails verification.
	ErrInvalidToken = errors.New("Invalid or expired token.")
	// ErrInvalidStudentID is returned when a path id is not a positive integer.
	ErrInvalidStudentID = errors.New("Invalid student id")
	// ErrNameRequired is returned when a student name is blank.
	ErrNameRequired = errors.New("Name is required")
	// ErrEmailRequired is returned when a student email is blank.
	ErrEmailRequired = errors.New("Email is required")
	// ErrStudentNotFound is returned when no active student matches, or an
	// update/delete touched zero rows.
	ErrStudentNotFound = errors.New("Student not found")
)

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything outside the
// taxonomy is treated as a store failure and collapses to a generic 500; the
// underlying detail is for server-side logs only.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrMissingCredentials.Error(), "MISSING_CREDENTIALS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNoToken):
		return NewHTTPError(http.StatusUnauthorized, ErrNoToken.Error(), "NO_TOKEN")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidToken.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidStudentID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidStudentID.Error(), "INVALID_STUDENT_ID")
	case errors.Is(err, ErrNameRequired):
		return NewHTTPError(http.StatusBadRequest, ErrNameRequired.Error(), "NAME_REQUIRED")
	case errors.Is(err, ErrEmailRequired):
		return NewHTTPError(http.StatusBadRequest, ErrEmailRequired.Error(), "EMAIL_REQUIRED")
	case errors.Is(err, ErrStudentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrStudentNotFound.Error(), "STUDENT_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Something went wrong!", "INTERNAL_ERROR")
	}
}
