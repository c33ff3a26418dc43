package models

import "time"

// Trending is the per-event engagement counter row, one per event,
// created lazily on the first view or click. Counters only grow.
type Trending struct {
	ID          int64     `json:"id" db:"id"`
	EventID     int64     `json:"eventId" db:"event_id"`
	Views       int64     `json:"views" db:"views"`
	Clicks      int64     `json:"clicks" db:"clicks"`
	LastUpdated time.Time `json:"lastUpdated" db:"last_updated"`

	// Related entities
	Event *Event `json:"event,omitempty"`
}
