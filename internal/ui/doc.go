// Package ui styles CLI output with lipgloss.
//
// [Palette] holds the named styles used for headers, success, errors, warnings and hints.
// [ScoreBadge] colors a match score by its [MatchLevel], using the same thresholds as the
// seeker dashboard: 70 and above is a strong match, 50 and above a fair one.
package ui
