package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
	"github.com/schoolhub/schoolhub/internal/pkg/logger"
)

// ITokenRepository defines the interface for refresh token persistence
type ITokenRepository interface {
	CreateToken(ctx context.Context, token *models.RefreshToken) error
	GetTokenByValue(ctx context.Context, tokenValue string) (*models.RefreshToken, error)
	RevokeToken(ctx context.Context, tokenValue string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// TokenRepository handles refresh token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken persists a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token *models.RefreshToken) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date", "is_revoked", "created_at").
		Values(token.Token, token.UserID, token.ExpiryDate, token.IsRevoked, time.Now()).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&token.ID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", token.UserID).Msg("Error executing create token query")
		return fmt.Errorf("error creating refresh token: %w", err)
	}

	return nil
}

// GetTokenByValue retrieves a refresh token by its value and checks its
// validity. Returns ErrTokenNotFound, ErrTokenRevoked or ErrTokenExpired
// for unusable tokens.
func (r *TokenRepository) GetTokenByValue(ctx context.Context, tokenValue string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	sql, args, err := r.sb.Select("id", "token", "user_id", "expiry_date", "is_revoked", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": tokenValue}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get token SQL")
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&token.ID, &token.Token, &token.UserID, &token.ExpiryDate, &token.IsRevoked, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning refresh token row")
		return nil, fmt.Errorf("error retrieving refresh token: %w", err)
	}

	if token.IsRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if token.Expired() {
		return nil, apperrors.ErrTokenExpired
	}

	return &token, nil
}

// RevokeToken marks a single refresh token as revoked
func (r *TokenRepository) RevokeToken(ctx context.Context, tokenValue string) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": tokenValue}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke token SQL")
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking refresh token: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// RevokeAllUserTokens marks all of a user's refresh tokens as revoked
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"user_id": userID, "is_revoked": false}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building revoke user tokens SQL")
		return fmt.Errorf("failed to build revoke user tokens query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing revoke user tokens query")
		return fmt.Errorf("error revoking user tokens: %w", err)
	}

	return nil
}

// CleanupExpiredTokens deletes expired and revoked tokens, returning the
// number of rows removed
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expiry_date": time.Now()},
			squirrel.Eq{"is_revoked": true},
		}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building cleanup tokens SQL")
		return 0, fmt.Errorf("failed to build cleanup tokens query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing cleanup tokens query")
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	removed := tag.RowsAffected()
	if removed > 0 {
		logger.Info().Int64("count", removed).Msg("Removed stale refresh tokens")
	}

	return removed, nil
}
