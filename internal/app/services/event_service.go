package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/filestorage"
	"github.com/kisinia/yosa/internal/pkg/helpers"
	"github.com/kisinia/yosa/internal/pkg/logger"
)

const (
	homeUpcomingCount = 3
	homeTrendingCount = 3
	recommendedCount  = 5
	dashTrendingCount = 5
)

// IEventService defines the interface for event browsing and management
type IEventService interface {
	GetHome(ctx context.Context) (*dto.HomeResponse, error)
	GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error)
	ListUpcoming(ctx context.Context, page, size int) ([]dto.EventResponse, dto.PaginationInfo, error)
	GetDetail(ctx context.Context, eventID, userID int64) (*dto.EventDetailResponse, error)
	GetPast(ctx context.Context, userID int64) (*dto.PastEventsResponse, error)
	Create(ctx context.Context, req *dto.CreateEventRequest, image *multipart.FileHeader) (*dto.EventResponse, error)
	Update(ctx context.Context, eventID int64, req *dto.UpdateEventRequest, image *multipart.FileHeader) (*dto.EventResponse, error)
}

// EventService handles event listings, the home and dashboard views and
// staff event management
type EventService struct {
	eventRepo        repositories.IEventRepository
	registrationRepo repositories.IRegistrationRepository
	trendingRepo     repositories.ITrendingRepository
	messageRepo      repositories.IMessageRepository
	fileStorage      filestorage.FileStorage
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repositories.IEventRepository,
	registrationRepo repositories.IRegistrationRepository,
	trendingRepo repositories.ITrendingRepository,
	messageRepo repositories.IMessageRepository,
	fileStorage filestorage.FileStorage,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		trendingRepo:     trendingRepo,
		messageRepo:      messageRepo,
		fileStorage:      fileStorage,
	}
}

// GetHome retrieves the public landing payload: the next few upcoming events
// and the currently trending ones
func (s *EventService) GetHome(ctx context.Context) (*dto.HomeResponse, error) {
	upcoming, err := s.eventRepo.GetNextUpcoming(ctx, homeUpcomingCount)
	if err != nil {
		return nil, err
	}

	trending, err := s.trendingRepo.GetTopUpcoming(ctx, homeTrendingCount)
	if err != nil {
		return nil, err
	}

	return &dto.HomeResponse{
		UpcomingEvents: dto.NewEventResponseList(upcoming),
		TrendingEvents: trendingToEventResponses(trending),
	}, nil
}

// GetDashboard retrieves the authenticated landing payload. Viewing the
// dashboard counts one view against every upcoming event the user holds a
// registration for.
func (s *EventService) GetDashboard(ctx context.Context, userID int64) (*dto.DashboardResponse, error) {
	upcomingRegs, err := s.registrationRepo.GetConfirmedByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	pastRegs, err := s.registrationRepo.GetConfirmedByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	registeredIDs, err := s.registrationRepo.GetRegisteredEventIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommended, err := s.eventRepo.GetUpcomingExcluding(ctx, registeredIDs, recommendedCount)
	if err != nil {
		return nil, err
	}

	trending, err := s.trendingRepo.GetTopUpcoming(ctx, dashTrendingCount)
	if err != nil {
		return nil, err
	}

	friendsGoing, err := s.registrationRepo.CountUpcomingByOthers(ctx, userID)
	if err != nil {
		return nil, err
	}

	unread, err := s.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(upcomingRegs) > 0 {
		viewedIDs := make([]int64, 0, len(upcomingRegs))
		for _, reg := range upcomingRegs {
			viewedIDs = append(viewedIDs, reg.EventID)
		}
		if err := s.trendingRepo.IncrementViews(ctx, viewedIDs); err != nil {
			logger.Warn().Err(err).Msg("Failed to record event views")
		}
	}

	return &dto.DashboardResponse{
		UpcomingRegistrations: dto.NewRegistrationResponseList(upcomingRegs),
		PastRegistrations:     dto.NewRegistrationResponseList(pastRegs),
		RecommendedEvents:     dto.NewEventResponseList(recommended),
		TrendingEvents:        trendingToEventResponses(trending),
		FriendsGoing:          friendsGoing,
		UnreadMessages:        unread,
	}, nil
}

// ListUpcoming retrieves upcoming active events ordered by date, paginated
func (s *EventService) ListUpcoming(ctx context.Context, page, size int) ([]dto.EventResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	events, err := s.eventRepo.GetUpcoming(ctx, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	total, err := s.eventRepo.CountUpcoming(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return dto.NewEventResponseList(events), helpers.NewPaginationInfo(total, page, size), nil
}

// GetDetail retrieves a single event with the caller's registration state.
// Opening a detail page counts one click on the event.
func (s *EventService) GetDetail(ctx context.Context, eventID, userID int64) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	registered, err := s.registrationRepo.IsUserRegistered(ctx, userID, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.trendingRepo.IncrementClicks(ctx, eventID); err != nil {
		logger.Warn().Err(err).Int64("eventId", eventID).Msg("Failed to record event click")
	}

	return &dto.EventDetailResponse{
		EventResponse:  dto.NewEventResponse(event),
		UserRegistered: registered,
	}, nil
}

// GetPast retrieves past events newest first, along with the caller's own
// past confirmed registrations
func (s *EventService) GetPast(ctx context.Context, userID int64) (*dto.PastEventsResponse, error) {
	events, err := s.eventRepo.GetPast(ctx)
	if err != nil {
		return nil, err
	}

	pastRegs, err := s.registrationRepo.GetConfirmedByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	return &dto.PastEventsResponse{
		PastEvents:        dto.NewEventResponseList(events),
		PastRegistrations: dto.NewRegistrationResponseList(pastRegs),
	}, nil
}

// Create adds a new event with an optional image
func (s *EventService) Create(ctx context.Context, req *dto.CreateEventRequest, image *multipart.FileHeader) (*dto.EventResponse, error) {
	if err := validateEventFields(models.EventType(req.EventType), req.Date, req.MaxAttendees); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		EventType:    models.EventType(req.EventType),
		Date:         req.Date,
		Location:     req.Location,
		MaxAttendees: req.MaxAttendees,
		IsActive:     true,
	}

	if image != nil {
		imageURL, err := s.fileStorage.SaveFileWithPath(image, "events")
		if err != nil {
			return nil, err
		}
		event.ImageURL = &imageURL
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	logger.Info().Int64("eventId", event.ID).Str("title", event.Title).Msg("Event created")

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// Update edits an event, optionally replacing its image and toggling
// whether it is active
func (s *EventService) Update(ctx context.Context, eventID int64, req *dto.UpdateEventRequest, image *multipart.FileHeader) (*dto.EventResponse, error) {
	if err := validateEventFields(models.EventType(req.EventType), req.Date, req.MaxAttendees); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if req.MaxAttendees < event.CurrentAttendees {
		return nil, apperrors.NewBadRequestError("maxAttendees cannot be lower than the current attendee count")
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventType = models.EventType(req.EventType)
	event.Date = req.Date
	event.Location = req.Location
	event.MaxAttendees = req.MaxAttendees
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}

	if image != nil {
		imageURL, err := s.fileStorage.SaveFileWithPath(image, "events")
		if err != nil {
			return nil, err
		}
		oldImage := event.ImageURL
		event.ImageURL = &imageURL
		if oldImage != nil {
			if err := s.fileStorage.DeleteFile(*oldImage); err != nil {
				logger.Warn().Err(err).Str("path", *oldImage).Msg("Failed to remove old event image")
			}
		}
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

func validateEventFields(eventType models.EventType, date time.Time, maxAttendees int) error {
	if !models.ValidEventType(eventType) {
		return apperrors.NewBadRequestError("unknown event type")
	}
	if date.Before(time.Now()) {
		return apperrors.ErrEventInPast
	}
	if maxAttendees <= 0 {
		return apperrors.NewBadRequestError("maxAttendees must be greater than zero")
	}
	return nil
}

func trendingToEventResponses(entries []*models.Trending) []dto.EventResponse {
	responses := make([]dto.EventResponse, 0, len(entries))
	for _, entry := range entries {
		if entry.Event != nil {
			responses = append(responses, dto.NewEventResponse(entry.Event))
		}
	}
	return responses
}
