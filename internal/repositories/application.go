package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

const applicationColumns = `id, job_id, user_id, message, resume_url, status, created_at`

// ApplicationRepository persists [models.Application] records.
//
// At most one application exists per (job, seeker) pair, and every successful create advances the
// job's applications counter exactly once.
type ApplicationRepository struct {
	collection
	jobs  *JobRepository
	users *UserRepository
}

// NewApplicationRepository creates a new [ApplicationRepository].
func NewApplicationRepository(db *sql.DB, jobs *JobRepository, users *UserRepository, logger *log.Logger, now func() time.Time) *ApplicationRepository {
	return &ApplicationRepository{collection: newCollection(db, "applications", logger, now), jobs: jobs, users: users}
}

// Create records userID's application to jobID with status pending, then increments the job's
// applications counter.
//
// A second application for the same pair fails with [shared.ErrDuplicateApplication] and leaves the
// counter untouched. Unknown job or user ids fail with [shared.ErrUnknownReference].
func (r *ApplicationRepository) Create(jobID, userID string, in models.ApplicationInput) (*models.Application, error) {
	app := models.NewApplication(jobID, userID, in)
	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	applied, err := r.applied(jobID, userID)
	if err != nil {
		return nil, err
	}
	if applied {
		r.logger.Warn("duplicate application rejected", "job_id", jobID, "user_id", userID)
		return nil, fmt.Errorf("%w: user %s already applied to job %s", shared.ErrDuplicateApplication, userID, jobID)
	}

	if ok, err := r.jobs.Exists(jobID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: job %s", shared.ErrUnknownReference, jobID)
	}
	if ok, err := r.users.Exists(userID); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: user %s", shared.ErrUnknownReference, userID)
	}

	app.ID = shared.GenerateID()
	app.CreatedAt = r.timestamp()

	err = r.insert(func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO applications (id, sequence, job_id, user_id, message, resume_url, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.Exec(query, app.ID, sequence, app.JobID, app.UserID, app.Message, app.ResumeURL, string(app.Status), app.CreatedAt)
		return err
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: user %s already applied to job %s", shared.ErrDuplicateApplication, userID, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}

	if err := r.jobs.incrementApplications(jobID); err != nil {
		r.logger.Error("application stored without counter update", "id", app.ID, "job_id", jobID, "err", err)
		return nil, fmt.Errorf("failed to count application %s: %w", app.ID, err)
	}

	r.logCreated(app)
	return app, nil
}

// Get retrieves an application by ID. A missing application is reported as (nil, nil).
func (r *ApplicationRepository) Get(id string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`

	app, err := scanApplication(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	return app, nil
}

// UpdateStatus moves an application to status. Any valid status may follow any other.
func (r *ApplicationRepository) UpdateStatus(id string, status models.ApplicationStatus) (*models.Application, error) {
	if _, err := models.ParseApplicationStatus(string(status)); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`UPDATE applications SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		r.logger.Debug("status update skipped, application not found", "id", id)
		return nil, nil
	}

	r.logger.Info("application status changed", "id", id, "status", status)
	return r.Get(id)
}

// List returns applications matching filter, newest first.
func (r *ApplicationRepository) List(filter models.ApplicationFilter) ([]*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1 = 1`
	var args []any

	if filter.JobID != "" {
		query += ` AND job_id = ?`
		args = append(args, filter.JobID)
	}
	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC, sequence DESC`

	apps, err := queryAll(r.db, query, args, scanApplication)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) applied(jobID, userID string) (bool, error) {
	var found bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = ? AND user_id = ?)`
	if err := r.db.QueryRow(query, jobID, userID).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return found, nil
}

func scanApplication(row scanner) (*models.Application, error) {
	var (
		app       models.Application
		status    string
		createdAt time.Time
	)

	if err := row.Scan(&app.ID, &app.JobID, &app.UserID, &app.Message, &app.ResumeURL, &status, &createdAt); err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatus(status)
	app.CreatedAt = createdAt.UTC()
	return &app, nil
}
