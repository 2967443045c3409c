package api

import (
	"errors"
	"net/http"

	"github.com/nolanpk/taskwell-api/internal/api/shared"
	"github.com/nolanpk/taskwell-api/internal/domain"
	"github.com/nolanpk/taskwell-api/internal/service/auth"
	"github.com/nolanpk/taskwell-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors (includes tasks owned by someone else)
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyTaskName),
		errors.Is(err, domain.ErrFullNameTooShort),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong),
		store.IsDuplicateError(err):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Internal detail never reaches the client.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid user credentials"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTokenNotFound):
		return "Token not found"

	case errors.Is(err, store.ErrEmailExists):
		return "The email has already been taken"

	case errors.Is(err, domain.ErrEmptyTaskName):
		return "The name field must not be empty"

	case errors.Is(err, domain.ErrPasswordTooShort):
		return "The password field must be at least 8 characters"

	case errors.Is(err, domain.ErrPasswordTooLong):
		return "The password field must be at most 64 characters"

	case errors.Is(err, domain.ErrFullNameTooShort):
		return "The fullName field must be at least 3 characters"

	case errors.Is(err, domain.ErrInvalidEmail):
		return "The email field must be a valid email address"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failure"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the uniform error body for an error bubbling up
// from the service or store layer.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)

	if status == http.StatusUnprocessableEntity {
		apiErr := shared.APIError{Message: message}
		switch {
		case errors.Is(err, store.ErrEmailExists):
			apiErr.Field = "email"
			apiErr.Rule = "database.unique"
		case errors.Is(err, domain.ErrEmptyTaskName):
			apiErr.Field = "name"
			apiErr.Rule = "required"
		case errors.Is(err, domain.ErrPasswordTooShort):
			apiErr.Field = "password"
			apiErr.Rule = "min"
		case errors.Is(err, domain.ErrPasswordTooLong):
			apiErr.Field = "password"
			apiErr.Rule = "max"
		case errors.Is(err, domain.ErrFullNameTooShort):
			apiErr.Field = "fullName"
			apiErr.Rule = "min"
		case errors.Is(err, domain.ErrInvalidEmail):
			apiErr.Field = "email"
			apiErr.Rule = "email"
		}
		shared.RespondWithValidationErrors(w, r, []shared.APIError{apiErr})
		return
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
