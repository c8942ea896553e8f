package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aweston/charkeep/internal/model"
	"github.com/aweston/charkeep/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeCharacterNotFound   = "CHARACTER_NOT_FOUND"
	CodeParentPhoneNotFound = "PARENT_PHONE_NOT_FOUND"
	CodeRaceNotFound        = "RACE_NOT_FOUND"
	CodeReligionNotFound    = "RELIGION_NOT_FOUND"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeUnknownUser         = "UNKNOWN_USER"
	CodeUnknownRace         = "UNKNOWN_RACE"
	CodeUnknownReligion     = "UNKNOWN_RELIGION"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrCharacterNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCharacterNotFound, "Character not found"}}
	case errors.Is(err, model.ErrParentPhoneNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParentPhoneNotFound, "Parent phone not found"}}
	case errors.Is(err, model.ErrRaceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRaceNotFound, "Race not found"}}
	case errors.Is(err, model.ErrReligionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeReligionNotFound, "Religion not found"}}
	case errors.Is(err, model.ErrUsernameTaken):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrEmailTaken):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already exists"}}
	case errors.Is(err, model.ErrUnknownUser):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUnknownUser, "Referenced user does not exist"}}
	case errors.Is(err, model.ErrUnknownRace):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUnknownRace, "Referenced race does not exist"}}
	case errors.Is(err, model.ErrUnknownReligion):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeUnknownReligion, "Referenced religion does not exist"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
