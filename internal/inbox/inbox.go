// Package inbox derives a user's conversations from their direct messages.
//
// Nothing is cached: every call re-reads the message store.
package inbox

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

// MissingUserTitle is shown for a counterpart whose profile no longer exists.
const MissingUserTitle = "Unknown user"

// MessageSource is the part of the message store the aggregator reads and marks.
type MessageSource interface {
	List(filter models.MessageFilter) ([]*models.Message, error)
	MarkRead(userID, otherUserID string) (int64, error)
}

// UserSource resolves counterpart profiles. A missing user is (nil, nil).
type UserSource interface {
	Get(id string) (*models.User, error)
}

// Conversation summarizes the messages exchanged with one counterpart.
type Conversation struct {
	CounterpartID string          `json:"counterpartUserId"`
	Counterpart   *models.User    `json:"counterpartUser"`
	LastMessage   *models.Message `json:"lastMessage"`
	UnreadCount   int             `json:"unreadCount"`
}

// Title names the counterpart, falling back to a placeholder when their profile is gone.
func (c Conversation) Title() string {
	switch {
	case c.Counterpart == nil:
		return MissingUserTitle
	case c.Counterpart.Name != "":
		return c.Counterpart.Name
	default:
		return c.Counterpart.Email
	}
}

// Aggregator builds conversation lists over a message and a user source.
type Aggregator struct {
	messages MessageSource
	users    UserSource
	logger   *log.Logger
}

// NewAggregator creates an [Aggregator]. A nil logger discards output.
func NewAggregator(messages MessageSource, users UserSource, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &Aggregator{messages: messages, users: users, logger: logger.With("component", "inbox")}
}

// ConversationsFor lists userID's conversations, most recently active first.
//
// Each conversation carries the chronologically last message of the pair and the number of
// messages addressed to userID that are still unread.
func (a *Aggregator) ConversationsFor(userID string) ([]Conversation, error) {
	messages, err := a.messages.List(models.MessageFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for %s: %w", userID, err)
	}

	index := make(map[string]int)
	lastSeen := make(map[string]int)
	conversations := []Conversation{}
	for pos, msg := range messages {
		other := msg.Counterpart(userID)
		i, ok := index[other]
		if !ok {
			i = len(conversations)
			index[other] = i
			conversations = append(conversations, Conversation{CounterpartID: other})
		}

		// Messages arrive oldest first, so the last one seen wins.
		conversations[i].LastMessage = msg
		lastSeen[other] = pos
		if msg.IsUnreadFor(userID) {
			conversations[i].UnreadCount++
		}
	}

	for i := range conversations {
		user, err := a.users.Get(conversations[i].CounterpartID)
		if err != nil {
			return nil, fmt.Errorf("failed to load counterpart %s: %w", conversations[i].CounterpartID, err)
		}
		if user == nil {
			a.logger.Debug("counterpart missing", "user_id", userID, "counterpart", conversations[i].CounterpartID)
		}
		conversations[i].Counterpart = user
	}

	// Same-instant messages keep list order, so the later one is the newer.
	slices.SortStableFunc(conversations, func(a, b Conversation) int {
		if c := byLastMessage(a, b); c != 0 {
			return c
		}
		return cmp.Compare(lastSeen[b.CounterpartID], lastSeen[a.CounterpartID])
	})
	return conversations, nil
}

// Open marks the messages otherUserID sent to userID as read and returns the thread between the two,
// oldest first.
func (a *Aggregator) Open(userID, otherUserID string) ([]*models.Message, error) {
	marked, err := a.messages.MarkRead(userID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark thread read: %w", err)
	}
	if marked > 0 {
		a.logger.Info("conversation opened", "user_id", userID, "counterpart", otherUserID, "marked_read", marked)
	}

	thread, err := a.messages.List(models.MessageFilter{UserID: userID, OtherUserID: otherUserID})
	if err != nil {
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}
	return thread, nil
}

// UnreadTotal sums unread counts across conversations.
func UnreadTotal(conversations []Conversation) int {
	total := 0
	for _, c := range conversations {
		total += c.UnreadCount
	}
	return total
}

// byLastMessage orders newer activity first and conversations without messages last.
func byLastMessage(a, b Conversation) int {
	switch {
	case a.LastMessage == nil && b.LastMessage == nil:
		return 0
	case a.LastMessage == nil:
		return 1
	case b.LastMessage == nil:
		return -1
	}
	return b.LastMessage.CreatedAt.Compare(a.LastMessage.CreatedAt)
}
