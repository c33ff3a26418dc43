// Package mocks provides testify mock implementations of the repository
// interfaces for service layer tests.
package mocks

import (
	"context"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock for repositories.IUserRepository
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, email, phone, bio string) error {
	args := m.Called(ctx, userID, firstName, lastName, email, phone, bio)
	return args.Error(0)
}

func (m *UserRepository) UpdateAvatarURL(ctx context.Context, userID int64, avatarURL *string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *UserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// EventRepository is a mock for repositories.IEventRepository
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) GetUpcoming(ctx context.Context, offset uint64, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *EventRepository) CountUpcoming(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EventRepository) GetNextUpcoming(ctx context.Context, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *EventRepository) GetUpcomingExcluding(ctx context.Context, eventIDs []int64, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, eventIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *EventRepository) GetPast(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *EventRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EventRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// RegistrationRepository is a mock for repositories.IRegistrationRepository
type RegistrationRepository struct {
	mock.Mock
}

func (m *RegistrationRepository) Register(ctx context.Context, registration *models.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *RegistrationRepository) Cancel(ctx context.Context, userID, eventID int64) error {
	args := m.Called(ctx, userID, eventID)
	return args.Error(0)
}

func (m *RegistrationRepository) IsUserRegistered(ctx context.Context, userID, eventID int64) (bool, error) {
	args := m.Called(ctx, userID, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *RegistrationRepository) GetConfirmedByUser(ctx context.Context, userID int64, upcoming bool) ([]*models.Registration, error) {
	args := m.Called(ctx, userID, upcoming)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Registration), args.Error(1)
}

func (m *RegistrationRepository) GetRegisteredEventIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *RegistrationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RegistrationRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RegistrationRepository) CountUpcomingByOthers(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RegistrationRepository) GetRecent(ctx context.Context, limit int) ([]*models.Registration, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Registration), args.Error(1)
}

// TrendingRepository is a mock for repositories.ITrendingRepository
type TrendingRepository struct {
	mock.Mock
}

func (m *TrendingRepository) IncrementClicks(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *TrendingRepository) IncrementViews(ctx context.Context, eventIDs []int64) error {
	args := m.Called(ctx, eventIDs)
	return args.Error(0)
}

func (m *TrendingRepository) GetTopUpcoming(ctx context.Context, limit int) ([]*models.Trending, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Trending), args.Error(1)
}

// MessageRepository is a mock for repositories.IMessageRepository
type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MessageRepository) GetVisible(ctx context.Context, userID int64, includeFeedback bool) ([]*models.Message, error) {
	args := m.Called(ctx, userID, includeFeedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MessageRepository) MarkAllRead(ctx context.Context, receiverID int64) error {
	args := m.Called(ctx, receiverID)
	return args.Error(0)
}

func (m *MessageRepository) GetRecentFeedback(ctx context.Context, limit int) ([]*models.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MessageRepository) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}

// TokenRepository is a mock for repositories.ITokenRepository
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Store(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *TokenRepository) GetByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *TokenRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
