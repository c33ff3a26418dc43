package services

import (
	"context"
	"testing"
	"time"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories/mocks"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func upcomingEvent() *models.Event {
	return &models.Event{
		ID:               1,
		Title:            "Welcome Party",
		EventType:        models.EventTypeParty,
		Date:             time.Now().Add(48 * time.Hour),
		MaxAttendees:     50,
		CurrentAttendees: 10,
		IsActive:         true,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms registration for an open event", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(1)).Return(upcomingEvent(), nil)
		regRepo.On("Register", ctx, mock.MatchedBy(func(r *models.Registration) bool {
			return r.UserID == 7 && r.EventID == 1 && r.Status == models.RegistrationConfirmed
		})).Return(nil)

		resp, err := svc.Register(ctx, 7, 1, &dto.RegisterForEventRequest{SpecialRequests: "vegan"})
		require.NoError(t, err)
		assert.Equal(t, string(models.RegistrationConfirmed), resp.Status)
		assert.Equal(t, "vegan", resp.SpecialRequests)
		regRepo.AssertExpectations(t)
	})

	t.Run("rejects inactive event", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		event := upcomingEvent()
		event.IsActive = false
		eventRepo.On("GetByID", ctx, int64(1)).Return(event, nil)

		_, err := svc.Register(ctx, 7, 1, &dto.RegisterForEventRequest{})
		assert.ErrorIs(t, err, apperrors.ErrEventInactive)
		regRepo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("rejects past event", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		event := upcomingEvent()
		event.Date = time.Now().Add(-time.Hour)
		eventRepo.On("GetByID", ctx, int64(1)).Return(event, nil)

		_, err := svc.Register(ctx, 7, 1, &dto.RegisterForEventRequest{})
		assert.ErrorIs(t, err, apperrors.ErrEventInPast)
	})

	t.Run("propagates capacity error", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(1)).Return(upcomingEvent(), nil)
		regRepo.On("Register", ctx, mock.Anything).Return(apperrors.ErrEventFull)

		_, err := svc.Register(ctx, 7, 1, &dto.RegisterForEventRequest{})
		assert.ErrorIs(t, err, apperrors.ErrEventFull)
	})

	t.Run("propagates duplicate registration error", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(1)).Return(upcomingEvent(), nil)
		regRepo.On("Register", ctx, mock.Anything).Return(apperrors.ErrAlreadyRegistered)

		_, err := svc.Register(ctx, 7, 1, &dto.RegisterForEventRequest{})
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	})

	t.Run("unknown event", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.ErrEventNotFound)

		_, err := svc.Register(ctx, 7, 99, &dto.RegisterForEventRequest{})
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels confirmed registration", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(1)).Return(upcomingEvent(), nil)
		regRepo.On("Cancel", ctx, int64(7), int64(1)).Return(nil)

		err := svc.Cancel(ctx, 7, 1)
		assert.NoError(t, err)
		regRepo.AssertExpectations(t)
	})

	t.Run("fails without a confirmed registration", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(1)).Return(upcomingEvent(), nil)
		regRepo.On("Cancel", ctx, int64(7), int64(1)).Return(apperrors.ErrRegistrationNotFound)

		err := svc.Cancel(ctx, 7, 1)
		assert.ErrorIs(t, err, apperrors.ErrRegistrationNotFound)
	})

	t.Run("second cancel does not decrement again", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		svc := NewRegistrationService(eventRepo, regRepo)

		eventRepo.On("GetByID", ctx, int64(1)).Return(upcomingEvent(), nil)
		regRepo.On("Cancel", ctx, int64(7), int64(1)).Return(nil).Once()
		regRepo.On("Cancel", ctx, int64(7), int64(1)).Return(apperrors.ErrRegistrationCancelled).Once()

		require.NoError(t, svc.Cancel(ctx, 7, 1))
		assert.ErrorIs(t, svc.Cancel(ctx, 7, 1), apperrors.ErrRegistrationCancelled)
		regRepo.AssertExpectations(t)
	})
}
