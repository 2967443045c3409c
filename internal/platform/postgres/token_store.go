package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nolanpk/taskwell-api/internal/domain"
	"github.com/nolanpk/taskwell-api/internal/platform/logger"
	"github.com/nolanpk/taskwell-api/internal/store"
)

// PostgresTokenStore implements the store.TokenStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// TokenStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.TokenStore interface
var _ store.TokenStore = (*PostgresTokenStore)(nil)

// Create implements store.TokenStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresTokenStore) Create(ctx context.Context, token *domain.AuthToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := token.Validate(); err != nil {
		log.Warn("token validation failed during create",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID.String()))
		return err
	}

	query := `
		INSERT INTO auth_tokens (id, user_id, type, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.Type,
		token.CreatedAt,
		token.ExpiresAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during token creation",
				slog.String("token_id", token.ID.String()),
				slog.String("user_id", token.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, token.UserID)
		}

		log.Error("failed to create auth token",
			slog.String("error", err.Error()),
			slog.String("token_id", token.ID.String()))
		return MapError(err)
	}

	log.Info("auth token created",
		slog.String("token_id", token.ID.String()),
		slog.String("user_id", token.UserID.String()))
	return nil
}

// Get implements store.TokenStore.Get
// Returns store.ErrTokenNotFound if the token does not exist or was revoked.
func (s *PostgresTokenStore) Get(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, type, created_at, expires_at
		FROM auth_tokens
		WHERE id = $1
	`

	var token domain.AuthToken
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&token.ID,
		&token.UserID,
		&token.Type,
		&token.CreatedAt,
		&token.ExpiresAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("auth token not found",
				slog.String("token_id", id.String()))
			return nil, store.ErrTokenNotFound
		}
		log.Error("failed to get auth token",
			slog.String("error", err.Error()),
			slog.String("token_id", id.String()))
		return nil, err
	}

	return &token, nil
}

// Delete implements store.TokenStore.Delete
// Returns store.ErrTokenNotFound if the token does not exist.
func (s *PostgresTokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM auth_tokens
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete auth token",
			slog.String("error", err.Error()),
			slog.String("token_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("token_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("auth token not found for delete",
			slog.String("token_id", id.String()))
		return store.ErrTokenNotFound
	}

	log.Info("auth token revoked",
		slog.String("token_id", id.String()))
	return nil
}

// DeleteExpired implements store.TokenStore.DeleteExpired
// Run once at startup; expired tokens are rejected by the JWT expiry check
// regardless, this only reclaims rows.
func (s *PostgresTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM auth_tokens
		WHERE expires_at < NOW()
	`

	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		log.Error("failed to delete expired auth tokens",
			slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if rowsAffected > 0 {
		log.Info("expired auth tokens removed",
			slog.Int64("count", rowsAffected))
	}
	return rowsAffected, nil
}
