package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/domain"
)

// TokenService defines operations for issuing, validating, and revoking
// bearer tokens.
//
// Issued tokens are signed JWTs whose "jti" claim is the ID of a persisted
// domain.AuthToken row. Validation therefore checks two things: the
// signature/expiry of the JWT itself, and that the row still exists. Logout
// deletes the row, revoking exactly that token; the user's other tokens
// stay valid.
type TokenService interface {
	// Issue creates a signed bearer token for the user and persists its
	// AuthToken record. Returns the record together with the signed string.
	Issue(ctx context.Context, userID uuid.UUID) (*IssuedToken, error)

	// Validate checks the provided token string and extracts its claims.
	// Returns ErrInvalidToken, ErrExpiredToken, or ErrTokenRevoked as
	// appropriate.
	Validate(ctx context.Context, tokenString string) (*Claims, error)

	// Revoke deletes the persisted token record, invalidating the token it
	// backs. Returns store.ErrTokenNotFound if the record is already gone.
	Revoke(ctx context.Context, tokenID uuid.UUID) error
}

// IssuedToken pairs a persisted AuthToken record with its signed wire form.
type IssuedToken struct {
	Token        *domain.AuthToken
	SignedString string
}

// Claims represents the validated contents of a bearer token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID

	// TokenID is the ID of the persisted AuthToken record (the JWT "jti").
	TokenID uuid.UUID

	// IssuedAt and ExpiresAt are the standard JWT time claims.
	IssuedAt  time.Time
	ExpiresAt time.Time
}
