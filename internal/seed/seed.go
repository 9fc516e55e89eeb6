package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/EgorTarasov/ldt-2023/internal/app/models"
	"github.com/EgorTarasov/ldt-2023/internal/app/repositories"
	pkgauth "github.com/EgorTarasov/ldt-2023/internal/pkg/auth"
)

const (
	defaultCuratorEmail    = "curator@ldt.local"
	defaultCuratorPassword = "Curator123!"
)

// CreateDefaultData seeds the default curator account so the review and
// mailing flows are reachable on a fresh database.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultCuratorEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if curator user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Curator user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default curator user...")

	hashed, err := pkgauth.HashPassword(defaultCuratorPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing curator password")
		return err
	}

	now := time.Now()
	curator := &models.User{
		Email:        defaultCuratorEmail,
		Password:     hashed,
		FIO:          "Default Curator",
		Birthday:     time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Role:         models.RoleCurator,
		PolicyAgreed: true,
		FirstAccess:  now,
		LastAccess:   now,
		Active:       true,
	}

	if err := userRepo.Create(ctx, curator); err != nil {
		lgr.Error().Err(err).Msg("Error creating curator user")
		return err
	}

	lgr.Info().Int64("curatorID", curator.ID).Msg("Default curator user created")
	return nil
}
