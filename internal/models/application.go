package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/campusconnect/internal/shared"
)

// Application is a seeker's bid on a job. At most one exists per (JobID, UserID).
type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	UserID    string            `json:"userId"`
	Message   string            `json:"message"`
	ResumeURL string            `json:"resumeUrl,omitempty"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ApplicationInput is the seeker-supplied content of an application.
type ApplicationInput struct {
	Message   string
	ResumeURL string
}

// NewApplication builds an unsaved pending application.
func NewApplication(jobID, userID string, in ApplicationInput) *Application {
	return &Application{
		JobID:     jobID,
		UserID:    userID,
		Message:   in.Message,
		ResumeURL: in.ResumeURL,
		Status:    ApplicationPending,
	}
}

func (a *Application) Key() string        { return a.ID }
func (a *Application) Created() time.Time { return a.CreatedAt }

func (a *Application) Validate() error {
	if a.JobID == "" || a.UserID == "" {
		return fmt.Errorf("%w: application needs a job and an applicant", shared.ErrInvalidInput)
	}
	_, err := ParseApplicationStatus(string(a.Status))
	return err
}

// ApplicationFilter selects applications. Empty fields match everything.
type ApplicationFilter struct {
	JobID  string
	UserID string
	Status ApplicationStatus
}
