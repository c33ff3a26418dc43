package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kisinia/yosa/internal/app/models"
	"github.com/kisinia/yosa/internal/pkg/apperrors"
)

// IMessageRepository defines the interface for message-related database operations
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	GetVisible(ctx context.Context, userID int64, includeFeedback bool) ([]*models.Message, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context, receiverID int64) error
	GetRecentFeedback(ctx context.Context, limit int) ([]*models.Message, error)
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
}

// MessageRepository handles database operations for messages and feedback
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message or feedback row
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := squirrel.Insert("messages").
		Columns("sender_id", "receiver_id", "subject", "content", "is_feedback", "is_read").
		Values(message.SenderID, message.ReceiverID, message.Subject, message.Content, message.IsFeedback, message.IsRead).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

var messageColumns = []string{
	"m.id", "m.sender_id", "m.receiver_id", "m.subject", "m.content",
	"m.is_feedback", "m.is_read", "m.created_at",
	"s.username", "rc.username",
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var message models.Message
	var senderName, receiverName *string
	err := row.Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Subject,
		&message.Content,
		&message.IsFeedback,
		&message.IsRead,
		&message.CreatedAt,
		&senderName,
		&receiverName,
	)
	if err != nil {
		return nil, err
	}

	if message.SenderID != nil && senderName != nil {
		message.Sender = &models.User{ID: *message.SenderID, Username: *senderName}
	}
	if message.ReceiverID != nil && receiverName != nil {
		message.Receiver = &models.User{ID: *message.ReceiverID, Username: *receiverName}
	}

	return &message, nil
}

func (r *MessageRepository) messageQuery() squirrel.SelectBuilder {
	return squirrel.Select(messageColumns...).
		From("messages m").
		LeftJoin("users s ON s.id = m.sender_id").
		LeftJoin("users rc ON rc.id = m.receiver_id").
		PlaceholderFormat(squirrel.Dollar)
}

// GetByID retrieves a message by its ID with sender and receiver usernames
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	query := r.messageQuery().Where("m.id = ?", id)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	message, err := scanMessage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return message, nil
}

// visibleMessagesPredicate builds the listing filter: messages addressed to
// the user, plus all feedback when includeFeedback is set. Messages the user
// sent are not listed; they stay reachable through GetByID.
func visibleMessagesPredicate(userID int64, includeFeedback bool) squirrel.Sqlizer {
	pred := squirrel.Or{
		squirrel.Eq{"m.receiver_id": userID},
	}
	if includeFeedback {
		pred = append(pred, squirrel.Eq{"m.is_feedback": true})
	}
	return pred
}

// GetVisible retrieves the messages a user may see in their inbox
func (r *MessageRepository) GetVisible(ctx context.Context, userID int64, includeFeedback bool) ([]*models.Message, error) {
	query := r.messageQuery().
		Where(visibleMessagesPredicate(userID, includeFeedback)).
		OrderBy("m.created_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// MarkRead marks a single message as read
func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// MarkAllRead marks every unread message addressed to the receiver as read
func (r *MessageRepository) MarkAllRead(ctx context.Context, receiverID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE WHERE receiver_id = $1 AND is_read = FALSE`,
		receiverID)
	if err != nil {
		return fmt.Errorf("error marking messages read: %w", err)
	}
	return nil
}

// GetRecentFeedback retrieves the latest feedback submissions for the admin
// dashboard
func (r *MessageRepository) GetRecentFeedback(ctx context.Context, limit int) ([]*models.Message, error) {
	query := r.messageQuery().
		Where(squirrel.Eq{"m.is_feedback": true}).
		OrderBy("m.created_at DESC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// CountUnread returns the number of unread messages addressed to the receiver
func (r *MessageRepository) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND is_read = FALSE`,
		receiverID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return count, nil
}
