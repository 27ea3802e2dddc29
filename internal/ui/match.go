package ui

import (
	"fmt"
)

// MatchLevel buckets a match score for display.
type MatchLevel int

const (
	MatchLow MatchLevel = iota
	MatchMedium
	MatchHigh
)

func (l MatchLevel) String() string {
	switch l {
	case MatchHigh:
		return "high"
	case MatchMedium:
		return "medium"
	default:
		return "low"
	}
}

// LevelFor returns the bucket score falls in.
func LevelFor(score int) MatchLevel {
	switch {
	case score >= 70:
		return MatchHigh
	case score >= 50:
		return MatchMedium
	default:
		return MatchLow
	}
}

// ScoreBadge renders score as a percentage colored by its level.
func ScoreBadge(score int) string {
	text := fmt.Sprintf("%3d%%", score)
	switch LevelFor(score) {
	case MatchHigh:
		return Styles.OK(text)
	case MatchMedium:
		return Styles.Warn(text)
	default:
		return Styles.Err(text)
	}
}

// UnreadBadge renders a count of unread messages, or nothing when there are none.
func UnreadBadge(n int) string {
	if n <= 0 {
		return ""
	}
	return Styles.Warn(fmt.Sprintf("(%d unread)", n))
}
