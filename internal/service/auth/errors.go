package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrTokenRevoked indicates a structurally valid token whose persisted
	// record no longer exists (e.g. after logout)
	ErrTokenRevoked = errors.New("authentication token has been revoked")

	// ErrInvalidCredentials indicates an unknown email or wrong password.
	// The two cases share one error so responses cannot be used to
	// enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
