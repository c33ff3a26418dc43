package models

import "time"

// Message represents a direct message or a feedback submission.
// Feedback messages have a nil receiver and IsFeedback set; the sender is
// nil for anonymous feedback.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   *int64    `json:"senderId,omitempty" db:"sender_id"`
	ReceiverID *int64    `json:"receiverId,omitempty" db:"receiver_id"`
	Subject    string    `json:"subject" db:"subject"`
	Content    string    `json:"content" db:"content"`
	IsFeedback bool      `json:"isFeedback" db:"is_feedback"`
	IsRead     bool      `json:"isRead" db:"is_read"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Sender   *User `json:"sender,omitempty"`
	Receiver *User `json:"receiver,omitempty"`
}
