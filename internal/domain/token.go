package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TokenTypeBearer is the type tag carried by issued auth tokens and echoed
// back in the login response.
const TokenTypeBearer = "bearer"

// Common auth token validation errors.
var (
	ErrEmptyTokenID    = errors.New("token ID cannot be empty")
	ErrEmptyTokenOwner = errors.New("token owner ID cannot be empty")
)

// AuthToken is the persisted record of an issued access token.
// Its ID doubles as the JWT "jti" claim: validating a bearer token requires
// both a valid signature and a live AuthToken row, so deleting the row
// (logout) revokes exactly that token while the user's other sessions
// keep working.
type AuthToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewAuthToken creates a new AuthToken for the given user.
func NewAuthToken(userID uuid.UUID, lifetime time.Duration) (*AuthToken, error) {
	now := time.Now().UTC()
	token := &AuthToken{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      TokenTypeBearer,
		CreatedAt: now,
		ExpiresAt: now.Add(lifetime),
	}

	if err := token.Validate(); err != nil {
		return nil, err
	}

	return token, nil
}

// Validate checks if the AuthToken has valid data.
func (t *AuthToken) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTokenID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTokenOwner
	}

	return nil
}
