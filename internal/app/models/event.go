package models

import "time"

// Event defines the event model based on the 'events' table
type Event struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	EventType        EventType `json:"eventType" db:"event_type"`
	Date             time.Time `json:"date" db:"date"`
	Location         string    `json:"location" db:"location"`
	MaxAttendees     int       `json:"maxAttendees" db:"max_attendees"`
	CurrentAttendees int       `json:"currentAttendees" db:"current_attendees"`
	ImageURL         *string   `json:"imageUrl,omitempty" db:"image_url"`
	IsActive         bool      `json:"isActive" db:"is_active"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// SeatsLeft is the derived remaining capacity, never persisted
func (e *Event) SeatsLeft() int {
	return e.MaxAttendees - e.CurrentAttendees
}

// IsUpcoming reports whether the event date is strictly after now
func (e *Event) IsUpcoming() bool {
	return e.Date.After(time.Now())
}
