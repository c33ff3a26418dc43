package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/db"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/dberrors"
)

// IRegistrationRepository defines the interface for registration-related
// database operations
type IRegistrationRepository interface {
	Register(ctx context.Context, registration *models.Registration) error
	Cancel(ctx context.Context, userID, eventID int64) error
	IsUserRegistered(ctx context.Context, userID, eventID int64) (bool, error)
	GetConfirmedByUser(ctx context.Context, userID int64, upcoming bool) ([]*models.Registration, error)
	GetRegisteredEventIDs(ctx context.Context, userID int64) ([]int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountUpcomingByOthers(ctx context.Context, userID int64) (int64, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Registration, error)
}

// RegistrationRepository handles database operations for event registrations.
// The register and cancel paths pair the registration write with the seat
// counter update inside one transaction.
type RegistrationRepository struct {
	db *db.PostgresDB
}

// NewRegistrationRepository creates a new RegistrationRepository
func NewRegistrationRepository(database *db.PostgresDB) *RegistrationRepository {
	return &RegistrationRepository{db: database}
}

// Register creates a confirmed registration and takes one seat on the event.
// The seat check and increment are a single conditional UPDATE, so two
// concurrent registrations near the capacity boundary cannot both succeed.
// Returns ErrAlreadyRegistered when the (user, event) pair already has a row
// and ErrEventFull when no seats are left; neither leaves any write behind.
func (r *RegistrationRepository) Register(ctx context.Context, registration *models.Registration) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insert := squirrel.Insert("registrations").
			Columns("user_id", "event_id", "status", "special_requests").
			Values(registration.UserID, registration.EventID, registration.Status, registration.SpecialRequests).
			Suffix("RETURNING id, created_at").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		err = tx.QueryRow(ctx, sql, args...).Scan(&registration.ID, &registration.CreatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "registrations_user_id_event_id_key") {
				return apperrors.ErrAlreadyRegistered
			}
			return fmt.Errorf("error creating registration: %w", err)
		}

		// Conditional seat take: no row updated means the event is full
		result, err := tx.Exec(ctx,
			`UPDATE events
			 SET current_attendees = current_attendees + 1, updated_at = NOW()
			 WHERE id = $1 AND current_attendees < max_attendees`,
			registration.EventID)
		if err != nil {
			return fmt.Errorf("error reserving seat: %w", err)
		}

		if result.RowsAffected() == 0 {
			return apperrors.ErrEventFull
		}

		return nil
	})
}

// Cancel transitions a confirmed registration to cancelled and releases its
// seat. The decrement is floored at zero so a historically corrupt counter
// can never go negative. Only CONFIRMED rows match the update, so cancelling
// twice cannot double-decrement: the second attempt fails with
// ErrRegistrationCancelled, and a pair that never registered fails with
// ErrRegistrationNotFound.
func (r *RegistrationRepository) Cancel(ctx context.Context, userID, eventID int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE registrations
			 SET status = $1
			 WHERE user_id = $2 AND event_id = $3 AND status = $4`,
			models.RegistrationCancelled, userID, eventID, models.RegistrationConfirmed)
		if err != nil {
			return fmt.Errorf("error cancelling registration: %w", err)
		}

		if result.RowsAffected() == 0 {
			var exists int
			err := tx.QueryRow(ctx,
				`SELECT 1 FROM registrations WHERE user_id = $1 AND event_id = $2 AND status = $3`,
				userID, eventID, models.RegistrationCancelled).Scan(&exists)
			if err == nil {
				return apperrors.ErrRegistrationCancelled
			}
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("error checking registration: %w", err)
			}
			return apperrors.ErrRegistrationNotFound
		}

		_, err = tx.Exec(ctx,
			`UPDATE events
			 SET current_attendees = GREATEST(current_attendees - 1, 0), updated_at = NOW()
			 WHERE id = $1`,
			eventID)
		if err != nil {
			return fmt.Errorf("error releasing seat: %w", err)
		}

		return nil
	})
}

// IsUserRegistered checks whether the user holds a confirmed registration
// for the event
func (r *RegistrationRepository) IsUserRegistered(ctx context.Context, userID, eventID int64) (bool, error) {
	query := squirrel.Select("1").
		From("registrations").
		Where("user_id = ? AND event_id = ? AND status = ?", userID, eventID, models.RegistrationConfirmed).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

func (r *RegistrationRepository) queryRegistrationsWithEvent(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Registration, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var registrations []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var event models.Event
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.Status,
			&reg.SpecialRequests,
			&reg.CreatedAt,
			&event.ID,
			&event.Title,
			&event.Description,
			&event.EventType,
			&event.Date,
			&event.Location,
			&event.MaxAttendees,
			&event.CurrentAttendees,
			&event.ImageURL,
			&event.IsActive,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reg.Event = &event
		registrations = append(registrations, &reg)
	}

	return registrations, rows.Err()
}

var registrationWithEventColumns = []string{
	"r.id", "r.user_id", "r.event_id", "r.status", "r.special_requests", "r.created_at",
	"e.id", "e.title", "e.description", "e.event_type", "e.date", "e.location",
	"e.max_attendees", "e.current_attendees", "e.image_url", "e.is_active",
	"e.created_at", "e.updated_at",
}

// GetConfirmedByUser retrieves the user's confirmed registrations with their
// events, split by whether the event is still upcoming
func (r *RegistrationRepository) GetConfirmedByUser(ctx context.Context, userID int64, upcoming bool) ([]*models.Registration, error) {
	datePred := "e.date < NOW()"
	order := "e.date DESC"
	if upcoming {
		datePred = "e.date > NOW()"
		order = "e.date ASC"
	}

	query := squirrel.Select(registrationWithEventColumns...).
		From("registrations r").
		Join("events e ON e.id = r.event_id").
		Where("r.user_id = ? AND r.status = ?", userID, models.RegistrationConfirmed).
		Where(datePred).
		OrderBy(order).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryRegistrationsWithEvent(ctx, query)
}

// GetRegisteredEventIDs retrieves event IDs the user holds a confirmed
// registration for
func (r *RegistrationRepository) GetRegisteredEventIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := squirrel.Select("event_id").
		From("registrations").
		Where("user_id = ? AND status = ?", userID, models.RegistrationConfirmed).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var eventIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		eventIDs = append(eventIDs, id)
	}

	return eventIDs, rows.Err()
}

// CountByUser returns the number of registrations a user has made, any status
func (r *RegistrationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// CountAll returns the total number of registrations
func (r *RegistrationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// CountUpcomingByOthers counts confirmed registrations by other users for
// upcoming events ("friends going" on the dashboard)
func (r *RegistrationRepository) CountUpcomingByOthers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM registrations r
		 JOIN events e ON e.id = r.event_id
		 WHERE r.user_id <> $1 AND r.status = $2 AND e.date > NOW()`,
		userID, models.RegistrationConfirmed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// GetRecent retrieves the most recent registrations with user and event
// loaded, for the admin dashboard
func (r *RegistrationRepository) GetRecent(ctx context.Context, limit int) ([]*models.Registration, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT r.id, r.user_id, r.event_id, r.status, r.special_requests, r.created_at,
		        u.username, e.title, e.date
		 FROM registrations r
		 JOIN users u ON u.id = r.user_id
		 JOIN events e ON e.id = r.event_id
		 ORDER BY r.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var registrations []*models.Registration
	for rows.Next() {
		var reg models.Registration
		var user models.User
		var event models.Event
		err := rows.Scan(
			&reg.ID,
			&reg.UserID,
			&reg.EventID,
			&reg.Status,
			&reg.SpecialRequests,
			&reg.CreatedAt,
			&user.Username,
			&event.Title,
			&event.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		user.ID = reg.UserID
		event.ID = reg.EventID
		reg.User = &user
		reg.Event = &event
		registrations = append(registrations, &reg)
	}

	return registrations, rows.Err()
}
