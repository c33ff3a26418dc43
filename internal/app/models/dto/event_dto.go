package dto

import (
	"time"

	"github.com/kisinia/yosa/internal/app/models"
)

// CreateEventRequest represents the form fields for creating an event.
// Bound from multipart form data because the request may carry an image.
type CreateEventRequest struct {
	Title        string    `form:"title" binding:"required,max=200"`
	Description  string    `form:"description" binding:"required"`
	EventType    string    `form:"eventType" binding:"required,oneof=party meetup game other"`
	Date         time.Time `form:"date" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	Location     string    `form:"location" binding:"required,max=200"`
	MaxAttendees int       `form:"maxAttendees" binding:"required"`
}

// UpdateEventRequest represents the form fields for editing an event
type UpdateEventRequest struct {
	Title        string    `form:"title" binding:"required,max=200"`
	Description  string    `form:"description" binding:"required"`
	EventType    string    `form:"eventType" binding:"required,oneof=party meetup game other"`
	Date         time.Time `form:"date" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	Location     string    `form:"location" binding:"required,max=200"`
	MaxAttendees int       `form:"maxAttendees" binding:"required"`
	IsActive     *bool     `form:"isActive"`
}

// EventResponse represents an event with its derived capacity
type EventResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	EventType        string    `json:"eventType"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	MaxAttendees     int       `json:"maxAttendees"`
	CurrentAttendees int       `json:"currentAttendees"`
	SeatsLeft        int       `json:"seatsLeft"`
	ImageURL         *string   `json:"imageUrl,omitempty"`
	IsActive         bool      `json:"isActive"`
	IsUpcoming       bool      `json:"isUpcoming"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewEventResponse maps an event model to its response shape
func NewEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		EventType:        string(e.EventType),
		Date:             e.Date,
		Location:         e.Location,
		MaxAttendees:     e.MaxAttendees,
		CurrentAttendees: e.CurrentAttendees,
		SeatsLeft:        e.SeatsLeft(),
		ImageURL:         e.ImageURL,
		IsActive:         e.IsActive,
		IsUpcoming:       e.IsUpcoming(),
		CreatedAt:        e.CreatedAt,
	}
}

// NewEventResponseList maps a slice of event models
func NewEventResponseList(events []*models.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, NewEventResponse(e))
	}
	return responses
}

// EventDetailResponse adds caller-specific registration state to an event
type EventDetailResponse struct {
	EventResponse
	UserRegistered bool `json:"userRegistered"`
}

// RegisterForEventRequest carries the optional special requests text
type RegisterForEventRequest struct {
	SpecialRequests string `json:"specialRequests" binding:"omitempty,max=2000"`
}

// RegistrationResponse represents a registration, optionally with its event
type RegistrationResponse struct {
	ID              int64          `json:"id"`
	EventID         int64          `json:"eventId"`
	Status          string         `json:"status"`
	SpecialRequests string         `json:"specialRequests,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	Event           *EventResponse `json:"event,omitempty"`
}

// NewRegistrationResponse maps a registration model to its response shape
func NewRegistrationResponse(r *models.Registration) RegistrationResponse {
	resp := RegistrationResponse{
		ID:              r.ID,
		EventID:         r.EventID,
		Status:          string(r.Status),
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
	}
	if r.Event != nil {
		event := NewEventResponse(r.Event)
		resp.Event = &event
	}
	return resp
}

// NewRegistrationResponseList maps a slice of registration models
func NewRegistrationResponseList(regs []*models.Registration) []RegistrationResponse {
	responses := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		responses = append(responses, NewRegistrationResponse(r))
	}
	return responses
}

// HomeResponse is the public landing payload
type HomeResponse struct {
	UpcomingEvents []EventResponse `json:"upcomingEvents"`
	TrendingEvents []EventResponse `json:"trendingEvents"`
}

// DashboardResponse is the authenticated landing payload
type DashboardResponse struct {
	UpcomingRegistrations []RegistrationResponse `json:"upcomingRegistrations"`
	PastRegistrations     []RegistrationResponse `json:"pastRegistrations"`
	RecommendedEvents     []EventResponse        `json:"recommendedEvents"`
	TrendingEvents        []EventResponse        `json:"trendingEvents"`
	FriendsGoing          int64                  `json:"friendsGoing"`
	UnreadMessages        int64                  `json:"unreadMessages"`
}

// PastEventsResponse lists past events alongside the caller's past registrations
type PastEventsResponse struct {
	PastEvents        []EventResponse        `json:"pastEvents"`
	PastRegistrations []RegistrationResponse `json:"pastRegistrations"`
}
