// Package matching scores how well a seeker fits a job and ranks jobs for a seeker.
//
// A score is the rounded sum of four weighted contributions:
//
//	skills       40  share of the job's required skills the seeker has
//	interests    25  share of the job's tags among the seeker's interests
//	experience   20  seeker level against the job's level
//	completeness 15  how much of the seeker's profile is filled in
//
// Skill and tag comparisons fold case and treat both sides as sets. Everything here is pure:
// the same user and job always produce the same [Result].
package matching
