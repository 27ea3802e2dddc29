package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/campusconnect/internal/inbox"
	"github.com/desertthunder/campusconnect/internal/matching"
)

const previewLength = 60

// WriteRecommendations prints one line per recommendation with its score and breakdown.
func WriteRecommendations(w io.Writer, recs []matching.Recommendation) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations yet. Add skills and interests to your profile.")
		return err
	}

	for i, rec := range recs {
		b := rec.Result.Breakdown
		_, err := fmt.Fprintf(w, "%2d. %3d%%  %s (%s)\n      skills %d%%  tags %d%%  experience %d%%  profile %d%%\n",
			i+1, rec.Result.Score, rec.Job.Title, rec.Job.Type,
			b.SkillMatch, b.TagMatch, b.ExperienceMatch, b.ProfileCompleteness)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteConversations prints one line per conversation, newest first, with unread counts.
func WriteConversations(w io.Writer, conversations []inbox.Conversation) error {
	if len(conversations) == 0 {
		_, err := fmt.Fprintln(w, "No conversations yet.")
		return err
	}

	for _, c := range conversations {
		unread := ""
		if c.UnreadCount > 0 {
			unread = fmt.Sprintf(" (%d unread)", c.UnreadCount)
		}

		preview := ""
		when := ""
		if c.LastMessage != nil {
			preview = Truncate(c.LastMessage.Text, previewLength)
			when = c.LastMessage.CreatedAt.Local().Format("Jan 2 15:04")
		}

		if _, err := fmt.Fprintf(w, "%s%s  %s\n    %s\n", c.Title(), unread, when, preview); err != nil {
			return err
		}
	}
	return nil
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(runes[:n-1]) + "…"
}
