package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/campusconnect/internal/shared"
)

// Job is an opportunity posted by a finder.
//
// Views and Applications are only ever advanced by the store; [JobPatch] cannot touch them.
type Job struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Type            JobType         `json:"type"`
	Tags            []string        `json:"tags"`
	RequiredSkills  []string        `json:"requiredSkills"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	Location        string          `json:"location"`
	Budget          string          `json:"budget,omitempty"`
	Status          JobStatus       `json:"status"`
	Views           int             `json:"views"`
	Applications    int             `json:"applications"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (j *Job) Key() string        { return j.ID }
func (j *Job) Created() time.Time { return j.CreatedAt }

// Validate checks the title and enum fields.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Title) == "" {
		return fmt.Errorf("%w: job title is required", shared.ErrInvalidInput)
	}
	if j.Type != "" && !j.Type.Valid() {
		return fmt.Errorf("%w: unknown job type %q", shared.ErrInvalidInput, j.Type)
	}
	if _, err := ParseJobStatus(string(j.Status)); err != nil {
		return err
	}
	return nil
}

// IsActive reports whether seekers can see the job.
func (j *Job) IsActive() bool { return j.Status == JobActive }

// Matches applies f to the job. Absent options impose no constraint.
func (j *Job) Matches(f JobFilter) bool {
	if f.UserID != "" && j.UserID != f.UserID {
		return false
	}
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if f.SearchText != "" && !j.containsText(f.SearchText) {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, func(tag string) bool { return slices.Contains(j.Tags, tag) }) {
		return false
	}
	return true
}

func (j *Job) containsText(needle string) bool {
	if shared.ContainsFold(j.Title, needle) || shared.ContainsFold(j.Description, needle) {
		return true
	}
	return slices.ContainsFunc(j.Tags, func(tag string) bool { return shared.ContainsFold(tag, needle) })
}

// JobInput is the finder-supplied content of a new job. An empty Status publishes immediately.
type JobInput struct {
	Title           string
	Description     string
	Type            JobType
	Tags            []string
	RequiredSkills  []string
	ExperienceLevel ExperienceLevel
	Location        string
	Budget          string
	Status          JobStatus
}

// NewJob builds an unsaved job owned by userID with zeroed counters.
func NewJob(userID string, in JobInput) *Job {
	status := in.Status
	if status == "" {
		status = JobActive
	}
	return &Job{
		UserID:          userID,
		Title:           in.Title,
		Description:     in.Description,
		Type:            in.Type,
		Tags:            cloneStrings(in.Tags),
		RequiredSkills:  cloneStrings(in.RequiredSkills),
		ExperienceLevel: in.ExperienceLevel,
		Location:        in.Location,
		Budget:          in.Budget,
		Status:          status,
	}
}

// JobPatch carries editable job fields. Nil fields are left untouched.
type JobPatch struct {
	Title           *string
	Description     *string
	Type            *JobType
	Tags            []string
	RequiredSkills  []string
	ExperienceLevel *ExperienceLevel
	Location        *string
	Budget          *string
	Status          *JobStatus
}

// Apply shallow-merges the patch over j.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Tags != nil {
		j.Tags = cloneStrings(p.Tags)
	}
	if p.RequiredSkills != nil {
		j.RequiredSkills = cloneStrings(p.RequiredSkills)
	}
	if p.ExperienceLevel != nil {
		j.ExperienceLevel = *p.ExperienceLevel
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Budget != nil {
		j.Budget = *p.Budget
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
}

// JobFilter selects jobs.
//
// SearchText is a case-insensitive substring match over title, description and tags.
// Tags matches when at least one listed tag appears verbatim in the job's tags.
type JobFilter struct {
	UserID     string
	Status     JobStatus
	Type       JobType
	SearchText string
	Tags       []string
}
