package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adeyemi/siwes-portal/internal/pkg/dberrors"
	"github.com/adeyemi/siwes-portal/internal/pkg/logger"
)

// TokenRepository stores revoked JWTs until they expire on their own
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

// Blacklist revokes a token until its expiry. Revoking a token twice is a
// no-op.
func (r *TokenRepository) Blacklist(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("blacklisted_tokens").
		Columns("token", "user_id", "expires_at", "created_at").
		Values(token, userID, expiresAt, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build blacklist token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing blacklist token query")
		return fmt.Errorf("error blacklisting token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether a token has been revoked.
func (r *TokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token = $1)", token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking token blacklist: %w", err)
	}
	return exists, nil
}

// CleanupExpired removes blacklist rows whose tokens have expired anyway.
func (r *TokenRepository) CleanupExpired(ctx context.Context) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, "DELETE FROM blacklisted_tokens WHERE expires_at < $1", time.Now())
	if err != nil {
		return 0, fmt.Errorf("error cleaning up blacklisted tokens: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
