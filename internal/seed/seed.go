package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/kisinia/yosa/internal/app/models"
	appRepos "github.com/kisinia/yosa/internal/app/repositories"
	"github.com/kisinia/yosa/internal/pkg/auth"
)

// CreateDefaultData creates the default staff account and a few sample
// events on an empty database. Errors are collected so a partial seed does
// not block startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default staff account --- //
	exists, err := userRepo.UsernameExists(ctx, "admin")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default staff account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := auth.HashPassword("ChangeMe123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default staff password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				Username:   "admin",
				Email:      "admin@yosa.local",
				Password:   hashed,
				FirstName:  "Site",
				LastName:   "Admin",
				Role:       appModels.RoleStaff,
				IsVerified: true,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating default staff account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("username", admin.Username).Msg("Default staff account created")
			}
		}
	}

	// --- Sample events --- //
	totalEvents, err := eventRepo.CountAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting events for seed")
		return errors.Join(finalErr, err)
	}
	if totalEvents > 0 {
		return finalErr
	}

	sampleEvents := []*appModels.Event{
		{
			Title:        "Welcome Party",
			Description:  "Kick off the season and meet everyone.",
			EventType:    appModels.EventTypeParty,
			Date:         time.Now().AddDate(0, 0, 14),
			Location:     "Main Hall",
			MaxAttendees: 100,
			IsActive:     true,
		},
		{
			Title:        "Board Game Night",
			Description:  "Bring your favorite game or join an open table.",
			EventType:    appModels.EventTypeGame,
			Date:         time.Now().AddDate(0, 0, 21),
			Location:     "Community Room B",
			MaxAttendees: 30,
			IsActive:     true,
		},
		{
			Title:        "Monthly Meetup",
			Description:  "Open discussion and planning for upcoming activities.",
			EventType:    appModels.EventTypeMeetup,
			Date:         time.Now().AddDate(0, 1, 0),
			Location:     "Cafe Corner",
			MaxAttendees: 50,
			IsActive:     true,
		},
	}

	for _, event := range sampleEvents {
		if err := eventRepo.Create(ctx, event); err != nil {
			lgr.Error().Err(err).Str("title", event.Title).Msg("Error creating sample event")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(sampleEvents)).Msg("Sample events created")
	}

	return finalErr
}
