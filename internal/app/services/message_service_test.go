package services

import (
	"context"
	"strings"
	"testing"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories/mocks"
	"github.com/kisinia/yosa/internal/config"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func feedbackMessage(id int64) *models.Message {
	return &models.Message{
		ID:         id,
		SenderID:   int64Ptr(5),
		Subject:    "bug",
		Content:    "Something broke",
		IsFeedback: true,
	}
}

func TestListMessagesVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("staff sees feedback under staff policy", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		messageRepo.On("GetVisible", ctx, int64(1), true).Return([]*models.Message{feedbackMessage(10)}, nil)
		messageRepo.On("MarkAllRead", ctx, int64(1)).Return(nil)

		messages, err := svc.ListMessages(ctx, 1, models.RoleStaff)
		require.NoError(t, err)
		assert.Len(t, messages, 1)
		messageRepo.AssertExpectations(t)
	})

	t.Run("regular user does not see feedback under staff policy", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		messageRepo.On("GetVisible", ctx, int64(2), false).Return([]*models.Message{}, nil)
		messageRepo.On("MarkAllRead", ctx, int64(2)).Return(nil)

		_, err := svc.ListMessages(ctx, 2, models.RoleUser)
		require.NoError(t, err)
		messageRepo.AssertCalled(t, "GetVisible", ctx, int64(2), false)
	})

	t.Run("regular user sees feedback under all policy", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityAll)

		messageRepo.On("GetVisible", ctx, int64(2), true).Return([]*models.Message{feedbackMessage(10)}, nil)
		messageRepo.On("MarkAllRead", ctx, int64(2)).Return(nil)

		messages, err := svc.ListMessages(ctx, 2, models.RoleUser)
		require.NoError(t, err)
		assert.Len(t, messages, 1)
	})
}

func TestGetMessage(t *testing.T) {
	ctx := context.Background()

	directMessage := func() *models.Message {
		return &models.Message{
			ID:         3,
			SenderID:   int64Ptr(5),
			ReceiverID: int64Ptr(8),
			Subject:    "hello",
			Content:    "see you there",
		}
	}

	t.Run("receiver reads and marks read once", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		messageRepo.On("GetByID", ctx, int64(3)).Return(directMessage(), nil)
		messageRepo.On("MarkRead", ctx, int64(3)).Return(nil).Once()

		resp, err := svc.GetMessage(ctx, 3, 8, models.RoleUser)
		require.NoError(t, err)
		assert.True(t, resp.IsRead)
		messageRepo.AssertExpectations(t)
	})

	t.Run("already read message is not marked again", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		read := directMessage()
		read.IsRead = true
		messageRepo.On("GetByID", ctx, int64(3)).Return(read, nil)

		_, err := svc.GetMessage(ctx, 3, 8, models.RoleUser)
		require.NoError(t, err)
		messageRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("sender may read without marking read", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		messageRepo.On("GetByID", ctx, int64(3)).Return(directMessage(), nil)

		resp, err := svc.GetMessage(ctx, 3, 5, models.RoleUser)
		require.NoError(t, err)
		assert.False(t, resp.IsRead)
		messageRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("unrelated user is denied", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		messageRepo.On("GetByID", ctx, int64(3)).Return(directMessage(), nil)

		_, err := svc.GetMessage(ctx, 3, 99, models.RoleUser)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("regular user denied feedback under staff policy", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		messageRepo.On("GetByID", ctx, int64(10)).Return(feedbackMessage(10), nil)

		_, err := svc.GetMessage(ctx, 10, 99, models.RoleUser)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects self-addressed message", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		_, err := svc.SendMessage(ctx, 5, &dto.SendMessageRequest{ReceiverID: 5, Subject: "hi", Content: "me"})
		assert.ErrorIs(t, err, apperrors.ErrSelfMessage)
	})

	t.Run("rejects unknown receiver", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		userRepo.On("GetByID", ctx, int64(42)).Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.SendMessage(ctx, 5, &dto.SendMessageRequest{ReceiverID: 42, Subject: "hi", Content: "hello"})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("delivers to existing receiver", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		userRepo.On("GetByID", ctx, int64(8)).Return(&models.User{ID: 8, Username: "jamie"}, nil)
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
			return *m.SenderID == 5 && *m.ReceiverID == 8 && !m.IsFeedback
		})).Return(nil)

		resp, err := svc.SendMessage(ctx, 5, &dto.SendMessageRequest{ReceiverID: 8, Subject: "hi", Content: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hi", resp.Subject)
		messageRepo.AssertExpectations(t)
	})
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("appends contact block to content", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		var created *models.Message
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
			created = m
			return m.IsFeedback && m.ReceiverID == nil
		})).Return(nil)

		_, err := svc.SubmitFeedback(ctx, int64Ptr(5), &dto.FeedbackRequest{
			Subject: "bug",
			Content: "Something broke",
			Email:   "user@example.com",
			Phone:   "+254700000000",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, strings.HasPrefix(created.Content, "Something broke"))
		assert.Contains(t, created.Content, "Email: user@example.com")
		assert.Contains(t, created.Content, "Phone: +254700000000")
	})

	t.Run("omits phone line when not provided", func(t *testing.T) {
		messageRepo := new(mocks.MessageRepository)
		userRepo := new(mocks.UserRepository)
		svc := NewMessageService(messageRepo, userRepo, config.FeedbackVisibilityStaff)

		var created *models.Message
		messageRepo.On("Create", ctx, mock.MatchedBy(func(m *models.Message) bool {
			created = m
			return true
		})).Return(nil)

		_, err := svc.SubmitFeedback(ctx, nil, &dto.FeedbackRequest{
			Subject: "general",
			Content: "Nice platform",
			Email:   "anon@example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Nil(t, created.SenderID)
		assert.NotContains(t, created.Content, "Phone:")
	})
}
