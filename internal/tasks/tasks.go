package tasks

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/matching"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/repositories"
	"github.com/desertthunder/campusconnect/internal/shared"
)

// FinderSummary aggregates a finder's postings for the dashboard.
type FinderSummary struct {
	Jobs              []*models.Job `json:"jobs"`
	TotalViews        int           `json:"totalViews"`
	TotalApplications int           `json:"totalApplications"`
	ActiveJobs        int           `json:"activeJobs"`
}

// Engine runs dashboard, seed and export operations against a [repositories.Store].
type Engine struct {
	store  *repositories.Store
	logger *log.Logger
}

// NewEngine creates a new Engine. A nil logger discards output.
func NewEngine(store *repositories.Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NopLogger()
	}
	return &Engine{store: store, logger: logger.With("component", "tasks")}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Summarize totals views, applications and active postings across every job finderID owns.
func (e *Engine) Summarize(finderID string) (*FinderSummary, error) {
	jobs, err := e.store.Jobs.List(models.JobFilter{UserID: finderID})
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs for %s: %w", finderID, err)
	}
	return Summarize(jobs), nil
}

// Summarize totals the counters of jobs.
func Summarize(jobs []*models.Job) *FinderSummary {
	summary := &FinderSummary{Jobs: jobs}
	if summary.Jobs == nil {
		summary.Jobs = []*models.Job{}
	}
	for _, job := range jobs {
		summary.TotalViews += job.Views
		summary.TotalApplications += job.Applications
		if job.IsActive() {
			summary.ActiveJobs++
		}
	}
	return summary
}

// Recommendations ranks every active job for userID. Unknown users yield (nil, nil).
func (e *Engine) Recommendations(userID string, limit int) ([]matching.Recommendation, error) {
	user, err := e.store.Users.Get(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		e.logger.Debug("recommendations skipped, user not found", "user_id", userID)
		return nil, nil
	}

	jobs, err := e.store.Jobs.List(models.JobFilter{Status: models.JobActive})
	if err != nil {
		return nil, fmt.Errorf("failed to load active jobs: %w", err)
	}
	return matching.Recommend(user, jobs, limit), nil
}
