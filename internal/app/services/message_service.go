package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/app/models/dto"
	"github.com/kisinia/yosa/internal/app/repositories"
	"github.com/kisinia/yosa/internal/config"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
	"github.com/kisinia/yosa/internal/pkg/logger"
)

// IMessageService defines the interface for messaging and feedback
type IMessageService interface {
	ListMessages(ctx context.Context, userID int64, role models.Role) ([]dto.MessageResponse, error)
	SendMessage(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetMessage(ctx context.Context, messageID, userID int64, role models.Role) (*dto.MessageResponse, error)
	SubmitFeedback(ctx context.Context, senderID *int64, req *dto.FeedbackRequest) (*dto.MessageResponse, error)
}

// MessageService handles direct messages and feedback submissions.
// Feedback visibility follows the configured policy: either staff only or
// every authenticated user.
type MessageService struct {
	messageRepo        repositories.IMessageRepository
	userRepo           repositories.IUserRepository
	feedbackVisibility string
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repositories.IMessageRepository,
	userRepo repositories.IUserRepository,
	feedbackVisibility string,
) *MessageService {
	return &MessageService{
		messageRepo:        messageRepo,
		userRepo:           userRepo,
		feedbackVisibility: feedbackVisibility,
	}
}

func (s *MessageService) canSeeFeedback(role models.Role) bool {
	if s.feedbackVisibility == config.FeedbackVisibilityAll {
		return true
	}
	return role == models.RoleStaff
}

// ListMessages retrieves the messages visible to the caller, newest first,
// and marks the caller's unread received messages as read
func (s *MessageService) ListMessages(ctx context.Context, userID int64, role models.Role) ([]dto.MessageResponse, error) {
	messages, err := s.messageRepo.GetVisible(ctx, userID, s.canSeeFeedback(role))
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkAllRead(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to mark messages read")
	}

	return dto.NewMessageResponseList(messages), nil
}

// SendMessage delivers a direct message to another user
func (s *MessageService) SendMessage(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.ReceiverID == senderID {
		return nil, apperrors.ErrSelfMessage
	}

	receiver, err := s.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   &senderID,
		ReceiverID: &receiver.ID,
		Subject:    req.Subject,
		Content:    req.Content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	resp := dto.NewMessageResponse(message)
	return &resp, nil
}

// GetMessage retrieves a single message the caller is allowed to see.
// Reading marks the message read only when the caller is the receiver.
func (s *MessageService) GetMessage(ctx context.Context, messageID, userID int64, role models.Role) (*dto.MessageResponse, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	isReceiver := message.ReceiverID != nil && *message.ReceiverID == userID
	isSender := message.SenderID != nil && *message.SenderID == userID
	isVisibleFeedback := message.IsFeedback && s.canSeeFeedback(role)

	if !isReceiver && !isSender && !isVisibleFeedback {
		return nil, apperrors.ErrPermissionDenied
	}

	if isReceiver && !message.IsRead {
		if err := s.messageRepo.MarkRead(ctx, message.ID); err != nil {
			return nil, err
		}
		message.IsRead = true
	}

	resp := dto.NewMessageResponse(message)
	return &resp, nil
}

// SubmitFeedback stores a feedback entry addressed to nobody in particular.
// The contact details are appended to the content so they survive with the
// message text. A nil senderID records the feedback as anonymous.
func (s *MessageService) SubmitFeedback(ctx context.Context, senderID *int64, req *dto.FeedbackRequest) (*dto.MessageResponse, error) {
	var content strings.Builder
	content.WriteString(req.Content)
	content.WriteString("\n\n---\nContact Information:\n")
	content.WriteString(fmt.Sprintf("Email: %s", req.Email))
	if req.Phone != "" {
		content.WriteString(fmt.Sprintf("\nPhone: %s", req.Phone))
	}

	message := &models.Message{
		SenderID:   senderID,
		Subject:    req.Subject,
		Content:    content.String(),
		IsFeedback: true,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	logger.Info().Str("subject", req.Subject).Msg("Feedback submitted")

	resp := dto.NewMessageResponse(message)
	return &resp, nil
}
