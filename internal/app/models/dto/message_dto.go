package dto

import (
	"time"

	"github.com/kisinia/yosa/internal/app/models"
)

// SendMessageRequest composes a direct message to another user
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Subject    string `json:"subject" binding:"required,max=200"`
	Content    string `json:"content" binding:"required"`
}

// FeedbackRequest submits feedback to staff. The subject comes from a fixed
// choice list; the contact email and optional phone are appended to the
// stored content as a contact block.
type FeedbackRequest struct {
	Subject string `json:"subject" binding:"required,oneof=general bug feature event registration payment other"`
	Content string `json:"content" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=15"`
}

// MessageResponse represents a message or feedback entry
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   *int64    `json:"senderId,omitempty"`
	ReceiverID *int64    `json:"receiverId,omitempty"`
	Sender     string    `json:"sender,omitempty"`
	Receiver   string    `json:"receiver,omitempty"`
	Subject    string    `json:"subject"`
	Content    string    `json:"content"`
	IsFeedback bool      `json:"isFeedback"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewMessageResponse maps a message model to its response shape
func NewMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Subject:    m.Subject,
		Content:    m.Content,
		IsFeedback: m.IsFeedback,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
	if m.Sender != nil {
		resp.Sender = m.Sender.Username
	}
	if m.Receiver != nil {
		resp.Receiver = m.Receiver.Username
	}
	return resp
}

// NewMessageResponseList maps a slice of message models
func NewMessageResponseList(messages []*models.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, NewMessageResponse(m))
	}
	return responses
}
