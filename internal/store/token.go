package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/domain"
)

// TokenStore defines the interface for auth token persistence.
// A token row existing is what makes a signed bearer token live; deleting
// the row revokes it.
type TokenStore interface {
	// Create saves a newly issued auth token.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, token *domain.AuthToken) error

	// Get retrieves an auth token by its ID (the JWT "jti").
	// Returns ErrTokenNotFound if the token does not exist or was revoked.
	Get(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error)

	// Delete revokes the auth token with the given ID.
	// Returns ErrTokenNotFound if the token does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes tokens whose expiry has passed and reports how
	// many were removed. Expired tokens are already unusable (the JWT "exp"
	// check rejects them); this just keeps the table from growing forever.
	DeleteExpired(ctx context.Context) (int64, error)
}
