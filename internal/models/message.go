package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/campusconnect/internal/shared"
)

// Message is a direct message. Read only ever moves from false to true.
type Message struct {
	ID        string    `json:"id"`
	FromID    string    `json:"fromId"`
	ToID      string    `json:"toId"`
	JobID     string    `json:"jobId,omitempty"`
	Text      string    `json:"text"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) Key() string        { return m.ID }
func (m *Message) Created() time.Time { return m.CreatedAt }

func (m *Message) Validate() error {
	if m.FromID == "" || m.ToID == "" {
		return fmt.Errorf("%w: message needs a sender and a recipient", shared.ErrInvalidInput)
	}
	return nil
}

// Counterpart returns the participant of m that is not userID.
// A message a user sent to themselves has themselves as counterpart.
func (m *Message) Counterpart(userID string) string {
	if m.FromID == userID {
		return m.ToID
	}
	return m.FromID
}

// IsUnreadFor reports whether m is addressed to userID and not yet read.
func (m *Message) IsUnreadFor(userID string) bool {
	return m.ToID == userID && !m.Read
}

// MessageFilter selects messages.
//
// With only UserID set, every message the user sent or received matches.
// With both UserID and OtherUserID set, only messages exchanged between the two match.
// OtherUserID alone imposes no constraint.
type MessageFilter struct {
	UserID      string
	OtherUserID string
}
