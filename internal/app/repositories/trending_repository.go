package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kisinia/yosa/internal/app/models"
)

// ITrendingRepository defines the interface for trending counter operations
type ITrendingRepository interface {
	IncrementClicks(ctx context.Context, eventID int64) error
	IncrementViews(ctx context.Context, eventIDs []int64) error
	GetTopUpcoming(ctx context.Context, limit int) ([]*models.Trending, error)
}

// TrendingRepository handles database operations for per-event engagement
// counters. Rows are created lazily through upserts, so callers never need
// to know whether an event has been counted before.
type TrendingRepository struct {
	db *pgxpool.Pool
}

// NewTrendingRepository creates a new TrendingRepository
func NewTrendingRepository(db *pgxpool.Pool) *TrendingRepository {
	return &TrendingRepository{db: db}
}

// IncrementClicks adds one click to the event's counter row, creating the
// row when it does not exist yet
func (r *TrendingRepository) IncrementClicks(ctx context.Context, eventID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO trending (event_id, views, clicks, last_updated)
		 VALUES ($1, 0, 1, NOW())
		 ON CONFLICT (event_id)
		 DO UPDATE SET clicks = trending.clicks + 1, last_updated = NOW()`,
		eventID)
	if err != nil {
		return fmt.Errorf("error incrementing clicks: %w", err)
	}
	return nil
}

// IncrementViews adds one view to every listed event's counter row.
// A single statement covers the whole batch.
func (r *TrendingRepository) IncrementViews(ctx context.Context, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO trending (event_id, views, clicks, last_updated)
		 SELECT id, 1, 0, NOW() FROM unnest($1::bigint[]) AS id
		 ON CONFLICT (event_id)
		 DO UPDATE SET views = trending.views + 1, last_updated = NOW()`,
		eventIDs)
	if err != nil {
		return fmt.Errorf("error incrementing views: %w", err)
	}
	return nil
}

// GetTopUpcoming retrieves the most viewed counters whose events are still
// upcoming and active, with the event loaded
func (r *TrendingRepository) GetTopUpcoming(ctx context.Context, limit int) ([]*models.Trending, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.event_id, t.views, t.clicks, t.last_updated,
		        e.id, e.title, e.description, e.event_type, e.date, e.location,
		        e.max_attendees, e.current_attendees, e.image_url, e.is_active,
		        e.created_at, e.updated_at
		 FROM trending t
		 JOIN events e ON e.id = t.event_id
		 WHERE e.date > NOW() AND e.is_active = TRUE
		 ORDER BY t.views DESC, t.clicks DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var entries []*models.Trending
	for rows.Next() {
		var entry models.Trending
		var event models.Event
		err := rows.Scan(
			&entry.ID,
			&entry.EventID,
			&entry.Views,
			&entry.Clicks,
			&entry.LastUpdated,
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
		entry.Event = &event
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
