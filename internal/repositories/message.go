package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

const messageColumns = `id, from_id, to_id, job_id, body, is_read, created_at`

// MessageRepository persists direct [models.Message] records.
type MessageRepository struct {
	collection
	users *UserRepository
}

// NewMessageRepository creates a new [MessageRepository]. Both participants are checked against users.
func NewMessageRepository(db *sql.DB, users *UserRepository, logger *log.Logger, now func() time.Time) *MessageRepository {
	return &MessageRepository{collection: newCollection(db, "messages", logger, now), users: users}
}

// Create stores an unread message from fromID to toID. jobID is optional context and is not checked.
func (r *MessageRepository) Create(fromID, toID, text, jobID string) (*models.Message, error) {
	msg := &models.Message{FromID: fromID, ToID: toID, JobID: jobID, Text: text}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	for _, id := range []string{fromID, toID} {
		ok, err := r.users.Exists(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: user %s", shared.ErrUnknownReference, id)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = shared.GenerateID()
	msg.CreatedAt = r.timestamp()

	err := r.insert(func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO messages (id, sequence, from_id, to_id, job_id, body, is_read, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		`
		_, err := tx.Exec(query, msg.ID, sequence, msg.FromID, msg.ToID, msg.JobID, msg.Text, msg.CreatedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}

	r.logCreated(msg)
	return msg, nil
}

// Get retrieves a message by ID. A missing message is reported as (nil, nil).
func (r *MessageRepository) Get(id string) (*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = ?`

	msg, err := scanMessage(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query message: %w", err)
	}
	return msg, nil
}

// List returns messages oldest first.
//
// With UserID set, only messages sent or received by that user are returned; adding OtherUserID
// narrows the result to the thread between the two.
func (r *MessageRepository) List(filter models.MessageFilter) ([]*models.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages`
	var args []any

	switch {
	case filter.UserID != "" && filter.OtherUserID != "":
		query += ` WHERE (from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)`
		args = append(args, filter.UserID, filter.OtherUserID, filter.OtherUserID, filter.UserID)
	case filter.UserID != "":
		query += ` WHERE from_id = ? OR to_id = ?`
		args = append(args, filter.UserID, filter.UserID)
	}
	query += ` ORDER BY created_at ASC, sequence ASC`

	messages, err := queryAll(r.db, query, args, scanMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// MarkRead flags every unread message sent by otherUserID to userID as read and returns how many
// changed. Messages userID sent are never touched, and repeating the call changes nothing.
func (r *MessageRepository) MarkRead(userID, otherUserID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`UPDATE messages SET is_read = 1 WHERE to_id = ? AND from_id = ? AND is_read = 0`, userID, otherUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows > 0 {
		r.logger.Debug("messages marked read", "user_id", userID, "from", otherUserID, "count", rows)
	}
	return rows, nil
}

// CountUnread returns how many messages addressed to userID are still unread.
func (r *MessageRepository) CountUnread(userID string) (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE to_id = ? AND is_read = 0`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func scanMessage(row scanner) (*models.Message, error) {
	var (
		msg       models.Message
		createdAt time.Time
	)

	if err := row.Scan(&msg.ID, &msg.FromID, &msg.ToID, &msg.JobID, &msg.Text, &msg.Read, &createdAt); err != nil {
		return nil, err
	}
	msg.CreatedAt = createdAt.UTC()
	return &msg, nil
}
