package models

// Role defines the user role type
type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
)

// EventType defines the category of an event
type EventType string

const (
	EventTypeParty  EventType = "party"
	EventTypeMeetup EventType = "meetup"
	EventTypeGame   EventType = "game"
	EventTypeOther  EventType = "other"
)

// ValidEventType reports whether t is one of the known event categories
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeParty, EventTypeMeetup, EventTypeGame, EventTypeOther:
		return true
	}
	return false
}

// RegistrationStatus defines the lifecycle state of a registration
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "PENDING"
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)
