package models

import "time"

// Registration represents a user's registration for an event.
// The (user, event) pair is unique; rows are never hard-deleted.
type Registration struct {
	ID              int64              `json:"id" db:"id"`
	UserID          int64              `json:"userId" db:"user_id"`
	EventID         int64              `json:"eventId" db:"event_id"`
	Status          RegistrationStatus `json:"status" db:"status"`
	SpecialRequests string             `json:"specialRequests,omitempty" db:"special_requests"`
	CreatedAt       time.Time          `json:"createdAt" db:"created_at"`

	// Related entities
	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}
