// Package seed checks startup state after migrations run.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appRepos "github.com/adeyemi/siwes-portal/internal/app/repositories"
)

// CheckBootstrapState logs whether the bootstrap signup window is still
// open. The portal ships with no accounts; the first signup becomes the
// admin, after which signup is closed.
func CheckBootstrapState(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to check user count")
		return err
	}

	if count == 0 {
		lgr.Info().Msg("No accounts exist yet; bootstrap signup is open at POST /api/auth/signup")
	} else {
		lgr.Info().Int64("users", count).Msg("Accounts exist; bootstrap signup is closed")
	}
	return nil
}
