package repositories

import (
	"errors"
	"testing"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

func TestMessageRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		s := setupTestStore(t)
		alice := mustCreateUser(t, s, "alice@example.com")
		bob := mustCreateUser(t, s, "bob@example.com")

		msg, err := s.Messages.Create(alice.ID, bob.ID, "hello", "job-that-may-not-exist")
		if err != nil {
			t.Fatalf("failed to create message: %v", err)
		}

		if msg.Read {
			t.Error("new messages should be unread")
		}

		stored, err := s.Messages.Get(msg.ID)
		if err != nil {
			t.Fatalf("failed to get message: %v", err)
		}
		if stored.Text != "hello" || stored.JobID != "job-that-may-not-exist" {
			t.Errorf("unexpected stored message %+v", stored)
		}
	})

	t.Run("UnknownParticipants", func(t *testing.T) {
		s := setupTestStore(t)
		alice := mustCreateUser(t, s, "alice@example.com")

		if _, err := s.Messages.Create(alice.ID, "ghost", "hi", ""); !errors.Is(err, shared.ErrUnknownReference) {
			t.Errorf("expected ErrUnknownReference for recipient, got %v", err)
		}
		if _, err := s.Messages.Create("ghost", alice.ID, "hi", ""); !errors.Is(err, shared.ErrUnknownReference) {
			t.Errorf("expected ErrUnknownReference for sender, got %v", err)
		}
		if _, err := s.Messages.Create(alice.ID, "", "hi", ""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for empty recipient, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		s := setupTestStore(t)
		alice := mustCreateUser(t, s, "alice@example.com")
		bob := mustCreateUser(t, s, "bob@example.com")
		carol := mustCreateUser(t, s, "carol@example.com")

		m1, _ := s.Messages.Create(alice.ID, bob.ID, "1", "")
		m2, _ := s.Messages.Create(bob.ID, alice.ID, "2", "")
		m3, _ := s.Messages.Create(carol.ID, alice.ID, "3", "")
		m4, _ := s.Messages.Create(bob.ID, carol.ID, "4", "")

		tests := []struct {
			name   string
			filter models.MessageFilter
			want   []*models.Message
		}{
			{name: "all oldest first", filter: models.MessageFilter{}, want: []*models.Message{m1, m2, m3, m4}},
			{name: "involving alice", filter: models.MessageFilter{UserID: alice.ID}, want: []*models.Message{m1, m2, m3}},
			{name: "thread alice bob", filter: models.MessageFilter{UserID: alice.ID, OtherUserID: bob.ID}, want: []*models.Message{m1, m2}},
			{name: "thread is symmetric", filter: models.MessageFilter{UserID: bob.ID, OtherUserID: alice.ID}, want: []*models.Message{m1, m2}},
			{name: "empty thread", filter: models.MessageFilter{UserID: alice.ID, OtherUserID: alice.ID}, want: []*models.Message{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				messages, err := s.Messages.List(tt.filter)
				if err != nil {
					t.Fatalf("failed to list messages: %v", err)
				}
				if len(messages) != len(tt.want) {
					t.Fatalf("expected %d messages, got %d", len(tt.want), len(messages))
				}
				for i, want := range tt.want {
					if messages[i].ID != want.ID {
						t.Errorf("expected messages[%d] = %q, got %q", i, want.Text, messages[i].Text)
					}
				}
			})
		}
	})

	t.Run("MarkRead", func(t *testing.T) {
		s := setupTestStore(t)
		alice := mustCreateUser(t, s, "alice@example.com")
		bob := mustCreateUser(t, s, "bob@example.com")
		carol := mustCreateUser(t, s, "carol@example.com")

		toAlice1, _ := s.Messages.Create(bob.ID, alice.ID, "hey", "")
		toAlice2, _ := s.Messages.Create(bob.ID, alice.ID, "you there?", "")
		fromAlice, _ := s.Messages.Create(alice.ID, bob.ID, "yes", "")
		fromCarol, _ := s.Messages.Create(carol.ID, alice.ID, "hi", "")

		changed, err := s.Messages.MarkRead(alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("failed to mark read: %v", err)
		}
		if changed != 2 {
			t.Errorf("expected 2 messages marked, got %d", changed)
		}

		for _, tc := range []struct {
			msg  *models.Message
			read bool
		}{
			{toAlice1, true},
			{toAlice2, true},
			{fromAlice, false},
			{fromCarol, false},
		} {
			stored, err := s.Messages.Get(tc.msg.ID)
			if err != nil {
				t.Fatalf("failed to get message: %v", err)
			}
			if stored.Read != tc.read {
				t.Errorf("message %q: expected read=%v, got %v", stored.Text, tc.read, stored.Read)
			}
		}

		changed, err = s.Messages.MarkRead(alice.ID, bob.ID)
		if err != nil {
			t.Fatalf("failed to repeat mark read: %v", err)
		}
		if changed != 0 {
			t.Errorf("expected repeat to change nothing, got %d", changed)
		}

		unread, err := s.Messages.CountUnread(alice.ID)
		if err != nil {
			t.Fatalf("failed to count unread: %v", err)
		}
		if unread != 1 {
			t.Errorf("expected 1 unread message left, got %d", unread)
		}
	})
}
