package models

import (
	"fmt"

	"github.com/desertthunder/campusconnect/internal/shared"
)

// ExperienceLevel is a totally ordered seniority label. Values outside the known set are kept as-is
// so that records round-trip, but they rank as unrecognised.
type ExperienceLevel string

const (
	Beginner     ExperienceLevel = "beginner"
	Intermediate ExperienceLevel = "intermediate"
	Advanced     ExperienceLevel = "advanced"
	Expert       ExperienceLevel = "expert"
)

var experienceRanks = map[string]int{
	string(Beginner):     0,
	string(Intermediate): 1,
	string(Advanced):     2,
	string(Expert):       3,
}

// Rank maps the level onto the ordinal scale beginner=0 .. expert=3, case-insensitively.
// ok is false when the level is empty or unrecognised.
func (l ExperienceLevel) Rank() (rank int, ok bool) {
	if l == "" {
		return 0, false
	}
	rank, ok = experienceRanks[shared.Fold(string(l))]
	return rank, ok
}

// ParseExperienceLevel normalizes s to a known level.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	if _, ok := experienceRanks[shared.Fold(s)]; !ok {
		return "", fmt.Errorf("%w: unknown experience level %q", shared.ErrInvalidInput, s)
	}
	return ExperienceLevel(shared.Fold(s)), nil
}

// JobType categorizes an opportunity.
type JobType string

const (
	AcademicProject       JobType = "academic-projects"
	StartupCollaboration  JobType = "startup-collaborations"
	PartTimeJob           JobType = "part-time-jobs"
	CompetitionsHackathon JobType = "competitions-hackathons"
	TeamSearch            JobType = "team-search"
)

// JobTypes lists every known job type in display order.
var JobTypes = []JobType{AcademicProject, StartupCollaboration, PartTimeJob, CompetitionsHackathon, TeamSearch}

// Valid reports whether t is one of [JobTypes].
func (t JobType) Valid() bool {
	for _, known := range JobTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseJobType converts a raw string to a JobType, returning an error for unknown values.
func ParseJobType(s string) (JobType, error) {
	t := JobType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown job type %q", shared.ErrInvalidInput, s)
	}
	return t, nil
}

// JobStatus controls whether a job is visible to seekers.
type JobStatus string

const (
	JobDraft  JobStatus = "draft"
	JobActive JobStatus = "active"
)

// ParseJobStatus converts a raw string to a JobStatus.
func ParseJobStatus(s string) (JobStatus, error) {
	switch st := JobStatus(s); st {
	case JobDraft, JobActive:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown job status %q", shared.ErrInvalidInput, s)
}

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationAccepted    ApplicationStatus = "accepted"
)

// ParseApplicationStatus converts a raw string to an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case ApplicationPending, ApplicationShortlisted, ApplicationRejected, ApplicationAccepted:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown application status %q", shared.ErrInvalidInput, s)
}
