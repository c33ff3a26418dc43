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

func newEventService(
	eventRepo *mocks.EventRepository,
	regRepo *mocks.RegistrationRepository,
	trendingRepo *mocks.TrendingRepository,
	msgRepo *mocks.MessageRepository,
) *EventService {
	return NewEventService(eventRepo, regRepo, trendingRepo, msgRepo, nil)
}

func TestCreateEventValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects past date", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newEventService(eventRepo, new(mocks.RegistrationRepository), new(mocks.TrendingRepository), new(mocks.MessageRepository))

		_, err := svc.Create(ctx, &dto.CreateEventRequest{
			Title:        "Old Party",
			Description:  "Too late",
			EventType:    "party",
			Date:         time.Now().Add(-time.Hour),
			Location:     "Hall",
			MaxAttendees: 10,
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrEventInPast)
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown event type", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newEventService(eventRepo, new(mocks.RegistrationRepository), new(mocks.TrendingRepository), new(mocks.MessageRepository))

		_, err := svc.Create(ctx, &dto.CreateEventRequest{
			Title:        "Mystery",
			Description:  "Uncategorized",
			EventType:    "concert",
			Date:         time.Now().Add(time.Hour),
			Location:     "Hall",
			MaxAttendees: 10,
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		eventRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive capacity", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newEventService(eventRepo, new(mocks.RegistrationRepository), new(mocks.TrendingRepository), new(mocks.MessageRepository))

		_, err := svc.Create(ctx, &dto.CreateEventRequest{
			Title:        "Party",
			Description:  "No seats",
			EventType:    "party",
			Date:         time.Now().Add(time.Hour),
			Location:     "Hall",
			MaxAttendees: 0,
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("creates active event with derived seats", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newEventService(eventRepo, new(mocks.RegistrationRepository), new(mocks.TrendingRepository), new(mocks.MessageRepository))

		eventRepo.On("Create", ctx, mock.MatchedBy(func(e *models.Event) bool {
			return e.IsActive && e.MaxAttendees == 25
		})).Return(nil)

		resp, err := svc.Create(ctx, &dto.CreateEventRequest{
			Title:        "Game Night",
			Description:  "Open tables",
			EventType:    "game",
			Date:         time.Now().Add(24 * time.Hour),
			Location:     "Room B",
			MaxAttendees: 25,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, 25, resp.SeatsLeft)
		assert.True(t, resp.IsActive)
	})
}

func TestUpdateEventValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects capacity below current attendees", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newEventService(eventRepo, new(mocks.RegistrationRepository), new(mocks.TrendingRepository), new(mocks.MessageRepository))

		eventRepo.On("GetByID", ctx, int64(1)).Return(&models.Event{
			ID:               1,
			CurrentAttendees: 20,
			MaxAttendees:     50,
		}, nil)

		_, err := svc.Update(ctx, 1, &dto.UpdateEventRequest{
			Title:        "Party",
			Description:  "Smaller",
			EventType:    "party",
			Date:         time.Now().Add(time.Hour),
			Location:     "Hall",
			MaxAttendees: 10,
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		eventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("toggles is_active", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		svc := newEventService(eventRepo, new(mocks.RegistrationRepository), new(mocks.TrendingRepository), new(mocks.MessageRepository))

		eventRepo.On("GetByID", ctx, int64(1)).Return(&models.Event{
			ID:           1,
			MaxAttendees: 50,
			IsActive:     true,
		}, nil)
		eventRepo.On("Update", ctx, mock.MatchedBy(func(e *models.Event) bool {
			return !e.IsActive
		})).Return(nil)

		inactive := false
		resp, err := svc.Update(ctx, 1, &dto.UpdateEventRequest{
			Title:        "Party",
			Description:  "Paused",
			EventType:    "party",
			Date:         time.Now().Add(time.Hour),
			Location:     "Hall",
			MaxAttendees: 50,
			IsActive:     &inactive,
		}, nil)
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})
}

func TestGetDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("reports registration state and counts a click", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		trendingRepo := new(mocks.TrendingRepository)
		svc := newEventService(eventRepo, regRepo, trendingRepo, new(mocks.MessageRepository))

		eventRepo.On("GetByID", ctx, int64(1)).Return(&models.Event{
			ID:               1,
			Date:             time.Now().Add(time.Hour),
			MaxAttendees:     10,
			CurrentAttendees: 4,
			IsActive:         true,
		}, nil)
		regRepo.On("IsUserRegistered", ctx, int64(7), int64(1)).Return(true, nil)
		trendingRepo.On("IncrementClicks", ctx, int64(1)).Return(nil)

		resp, err := svc.GetDetail(ctx, 1, 7)
		require.NoError(t, err)
		assert.True(t, resp.UserRegistered)
		assert.Equal(t, 6, resp.SeatsLeft)
		trendingRepo.AssertExpectations(t)
	})

	t.Run("detail still served when click counter fails", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		trendingRepo := new(mocks.TrendingRepository)
		svc := newEventService(eventRepo, regRepo, trendingRepo, new(mocks.MessageRepository))

		eventRepo.On("GetByID", ctx, int64(1)).Return(&models.Event{ID: 1, MaxAttendees: 10}, nil)
		regRepo.On("IsUserRegistered", ctx, int64(7), int64(1)).Return(false, nil)
		trendingRepo.On("IncrementClicks", ctx, int64(1)).Return(assert.AnError)

		_, err := svc.GetDetail(ctx, 1, 7)
		assert.NoError(t, err)
	})
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("bulk view increment covers upcoming registrations", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		trendingRepo := new(mocks.TrendingRepository)
		msgRepo := new(mocks.MessageRepository)
		svc := newEventService(eventRepo, regRepo, trendingRepo, msgRepo)

		upcoming := []*models.Registration{
			{ID: 1, UserID: 7, EventID: 11, Status: models.RegistrationConfirmed},
			{ID: 2, UserID: 7, EventID: 12, Status: models.RegistrationConfirmed},
		}
		regRepo.On("GetConfirmedByUser", ctx, int64(7), true).Return(upcoming, nil)
		regRepo.On("GetConfirmedByUser", ctx, int64(7), false).Return([]*models.Registration{}, nil)
		regRepo.On("GetRegisteredEventIDs", ctx, int64(7)).Return([]int64{11, 12}, nil)
		regRepo.On("CountUpcomingByOthers", ctx, int64(7)).Return(int64(3), nil)
		eventRepo.On("GetUpcomingExcluding", ctx, []int64{11, 12}, recommendedCount).Return([]*models.Event{}, nil)
		trendingRepo.On("GetTopUpcoming", ctx, dashTrendingCount).Return([]*models.Trending{}, nil)
		trendingRepo.On("IncrementViews", ctx, []int64{11, 12}).Return(nil)
		msgRepo.On("CountUnread", ctx, int64(7)).Return(int64(4), nil)

		resp, err := svc.GetDashboard(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.FriendsGoing)
		assert.Equal(t, int64(4), resp.UnreadMessages)
		assert.Len(t, resp.UpcomingRegistrations, 2)
		trendingRepo.AssertCalled(t, "IncrementViews", ctx, []int64{11, 12})
	})

	t.Run("no view increment without upcoming registrations", func(t *testing.T) {
		eventRepo := new(mocks.EventRepository)
		regRepo := new(mocks.RegistrationRepository)
		trendingRepo := new(mocks.TrendingRepository)
		msgRepo := new(mocks.MessageRepository)
		svc := newEventService(eventRepo, regRepo, trendingRepo, msgRepo)

		regRepo.On("GetConfirmedByUser", ctx, int64(7), true).Return([]*models.Registration{}, nil)
		regRepo.On("GetConfirmedByUser", ctx, int64(7), false).Return([]*models.Registration{}, nil)
		regRepo.On("GetRegisteredEventIDs", ctx, int64(7)).Return([]int64{}, nil)
		regRepo.On("CountUpcomingByOthers", ctx, int64(7)).Return(int64(0), nil)
		eventRepo.On("GetUpcomingExcluding", ctx, []int64{}, recommendedCount).Return([]*models.Event{}, nil)
		trendingRepo.On("GetTopUpcoming", ctx, dashTrendingCount).Return([]*models.Trending{}, nil)
		msgRepo.On("CountUnread", ctx, int64(7)).Return(int64(0), nil)

		_, err := svc.GetDashboard(ctx, 7)
		require.NoError(t, err)
		trendingRepo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})
}
