package services

import (
	"context"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/logger"
)

// IRegistrationService defines the interface for the registration workflow
type IRegistrationService interface {
	Register(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error)
	Cancel(ctx context.Context, userID, eventID int64) error
}

// RegistrationService handles registering for and cancelling events
type RegistrationService struct {
	eventRepo        repositories.IEventRepository
	registrationRepo repositories.IRegistrationRepository
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	eventRepo repositories.IEventRepository,
	registrationRepo repositories.IRegistrationRepository,
) *RegistrationService {
	return &RegistrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
	}
}

// Register creates a confirmed registration for the caller. The event must
// exist, be active and still upcoming; duplicates and capacity are enforced
// inside the repository transaction, not read-then-checked here.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID int64, req *dto.RegisterForEventRequest) (*dto.RegistrationResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.IsActive {
		return nil, apperrors.ErrEventInactive
	}
	if !event.IsUpcoming() {
		return nil, apperrors.ErrEventInPast
	}

	registration := &models.Registration{
		UserID:          userID,
		EventID:         eventID,
		Status:          models.RegistrationConfirmed,
		SpecialRequests: req.SpecialRequests,
	}

	if err := s.registrationRepo.Register(ctx, registration); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("userId", userID).
		Int64("eventId", eventID).
		Msg("User registered for event")

	resp := dto.NewRegistrationResponse(registration)
	return &resp, nil
}

// Cancel releases the caller's confirmed registration for the event
func (s *RegistrationService) Cancel(ctx context.Context, userID, eventID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return err
	}

	if err := s.registrationRepo.Cancel(ctx, userID, eventID); err != nil {
		return err
	}

	logger.Info().
		Int64("userId", userID).
		Int64("eventId", eventID).
		Msg("Registration cancelled")

	return nil
}
