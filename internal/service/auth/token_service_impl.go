package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/config"
	"github.com/nolanpk/taskwell-api/internal/domain"
	"github.com/nolanpk/taskwell-api/internal/platform/logger"
	"github.com/nolanpk/taskwell-api/internal/store"
)

// hmacTokenService is an implementation of TokenService using HMAC-SHA
// signing backed by a TokenStore for revocation.
type hmacTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	tokenStore    store.TokenStore
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference to handle clock drift
}

// tokenClaims defines the structure of JWT claims we use.
type tokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a new token service using HMAC-SHA256 signing.
func NewTokenService(cfg config.AuthConfig, tokenStore store.TokenStore) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if tokenStore == nil {
		return nil, fmt.Errorf("token store is required")
	}

	return &hmacTokenService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		tokenStore:    tokenStore,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}, nil
}

// Issue implements TokenService.Issue.
func (s *hmacTokenService) Issue(ctx context.Context, userID uuid.UUID) (*IssuedToken, error) {
	log := logger.FromContext(ctx)

	record, err := domain.NewAuthToken(userID, s.tokenLifetime)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
			ID:        record.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign bearer token",
			"error", err,
			"user_id", userID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return nil, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	// Persist the record last: a signed token whose row insert failed is
	// never handed out, so it can never authenticate.
	if err := s.tokenStore.Create(ctx, record); err != nil {
		log.Error("failed to persist auth token",
			"error", err,
			"user_id", userID,
			"token_id", record.ID)
		return nil, fmt.Errorf("failed to persist auth token: %w", err)
	}

	return &IssuedToken{Token: record, SignedString: signed}, nil
}

// Validate implements TokenService.Validate.
// A token passes only if the signature and time claims check out AND its
// persisted record still exists.
func (s *hmacTokenService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: malformed or bad signature", "error", err)
			return nil, ErrInvalidToken
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil || claims.UserID == uuid.Nil {
		log.Debug("token validation failed: bad jti or uid claim")
		return nil, ErrInvalidToken
	}

	// Revocation check: logout deletes the row.
	if _, err := s.tokenStore.Get(ctx, tokenID); err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			log.Debug("token validation failed: token revoked",
				"token_id", tokenID)
			return nil, ErrTokenRevoked
		}
		log.Error("failed to look up auth token",
			"error", err,
			"token_id", tokenID)
		return nil, fmt.Errorf("failed to look up auth token: %w", err)
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenID:   tokenID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke implements TokenService.Revoke.
func (s *hmacTokenService) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokenStore.Delete(ctx, tokenID)
}
