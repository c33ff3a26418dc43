package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
)

// IEventRepository defines the interface for event-related database operations
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	GetUpcoming(ctx context.Context, offset uint64, limit int) ([]*models.Event, error)
	CountUpcoming(ctx context.Context) (int64, error)
	GetNextUpcoming(ctx context.Context, limit int) ([]*models.Event, error)
	GetUpcomingExcluding(ctx context.Context, excludeEventIDs []int64, limit int) ([]*models.Event, error)
	GetPast(ctx context.Context) ([]*models.Event, error)
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

var eventColumns = []string{
	"id", "title", "description", "event_type", "date", "location",
	"max_attendees", "current_attendees", "image_url", "is_active",
	"created_at", "updated_at",
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	err := row.Scan(
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
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// Create inserts a new event and sets its generated ID
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := squirrel.Insert("events").
		Columns("title", "description", "event_type", "date", "location", "max_attendees", "image_url", "is_active").
		Values(event.Title, event.Description, event.EventType, event.Date, event.Location, event.MaxAttendees, event.ImageURL, event.IsActive).
		Suffix("RETURNING id, current_attendees, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&event.ID, &event.CurrentAttendees, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetByID retrieves an event by ID
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return event, nil
}

// Update rewrites the mutable event fields. current_attendees is deliberately
// excluded: it only moves through seat reservation and release.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := squirrel.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("event_type", event.EventType).
		Set("date", event.Date).
		Set("location", event.Location).
		Set("max_attendees", event.MaxAttendees).
		Set("image_url", event.ImageURL).
		Set("is_active", event.IsActive).
		Set("updated_at", time.Now()).
		Where("id = ?", event.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}

// GetUpcoming retrieves active upcoming events ordered by date, paginated
func (r *EventRepository) GetUpcoming(ctx context.Context, offset uint64, limit int) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("date > NOW() AND is_active = true").
		OrderBy("date ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// CountUpcoming returns the number of active upcoming events
func (r *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE date > NOW() AND is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// GetNextUpcoming retrieves the soonest active upcoming events
func (r *EventRepository) GetNextUpcoming(ctx context.Context, limit int) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("date > NOW() AND is_active = true").
		OrderBy("date ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryEvents(ctx, query)
}

// GetUpcomingExcluding retrieves soonest active upcoming events, skipping the
// given event IDs. Used for dashboard recommendations.
func (r *EventRepository) GetUpcomingExcluding(ctx context.Context, excludeEventIDs []int64, limit int) ([]*models.Event, error) {
	query := squirrel.Select(eventColumns...).
		From("events").
		Where("date > NOW() AND is_active = true").
		OrderBy("date ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if len(excludeEventIDs) > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeEventIDs})
	}

	return r.queryEvents(ctx, query)
}

// pastEventsQuery selects past events newest first. Deactivated events are
// included; the archive covers everything that already happened.
func pastEventsQuery() squirrel.SelectBuilder {
	return squirrel.Select(eventColumns...).
		From("events").
		Where("date < NOW()").
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar)
}

// GetPast retrieves past events, newest first
func (r *EventRepository) GetPast(ctx context.Context) ([]*models.Event, error) {
	return r.queryEvents(ctx, pastEventsQuery())
}

// CountAll returns the total number of events
func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}

// CountActive returns the number of active events
func (r *EventRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
