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

const jobColumns = `id, user_id, title, description, job_type, tags, required_skills, experience_level,
	location, budget, status, views, applications, created_at`

// JobRepository persists [models.Job] records.
//
// The views and applications counters only move forward through [JobRepository.IncrementViews]
// and application creation, each as a single atomic UPDATE.
type JobRepository struct {
	collection
	users *UserRepository
}

// NewJobRepository creates a new [JobRepository]. Owners are checked against users.
func NewJobRepository(db *sql.DB, users *UserRepository, logger *log.Logger, now func() time.Time) *JobRepository {
	return &JobRepository{collection: newCollection(db, "jobs", logger, now), users: users}
}

// Create posts a job owned by userID with zeroed counters.
func (r *JobRepository) Create(userID string, in models.JobInput) (*models.Job, error) {
	job := models.NewJob(userID, in)
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	owner, err := r.users.Exists(userID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, fmt.Errorf("%w: user %s", shared.ErrUnknownReference, userID)
	}

	tags, err := encodeList(job.Tags)
	if err != nil {
		return nil, err
	}
	skills, err := encodeList(job.RequiredSkills)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = shared.GenerateID()
	job.CreatedAt = r.timestamp()

	err = r.insert(func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO jobs (id, sequence, user_id, title, description, job_type, tags, required_skills,
				experience_level, location, budget, status, views, applications, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?)
		`
		_, err := tx.Exec(query, job.ID, sequence, job.UserID, job.Title, job.Description, string(job.Type), tags, skills,
			string(job.ExperienceLevel), job.Location, job.Budget, string(job.Status), job.CreatedAt)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}

	r.logCreated(job)
	return job, nil
}

// Get retrieves a job by ID. A missing job is reported as (nil, nil).
func (r *JobRepository) Get(id string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = ?`

	job, err := scanJob(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}
	return job, nil
}

// Exists reports whether a job with id is currently stored.
func (r *JobRepository) Exists(id string) (bool, error) {
	return r.exists(id)
}

// Update merges patch over the stored job. Counters are never written here.
func (r *JobRepository) Update(id string, patch models.JobPatch) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		r.logger.Debug("update skipped, job not found", "id", id)
		return nil, nil
	}

	patch.Apply(job)
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tags, err := encodeList(job.Tags)
	if err != nil {
		return nil, err
	}
	skills, err := encodeList(job.RequiredSkills)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE jobs
		SET title = ?, description = ?, job_type = ?, tags = ?, required_skills = ?, experience_level = ?,
			location = ?, budget = ?, status = ?
		WHERE id = ?
	`
	_, err = r.db.Exec(query, job.Title, job.Description, string(job.Type), tags, skills,
		string(job.ExperienceLevel), job.Location, job.Budget, string(job.Status), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	r.logger.Info("job updated", "id", id)
	return job, nil
}

// Delete hard-deletes a job and reports whether it existed.
//
// Applications and messages that reference the job are left in place.
func (r *JobRepository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.db.Exec(`DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows > 0 {
		r.logger.Info("job deleted", "id", id)
	}
	return rows > 0, nil
}

// IncrementViews adds one to the job's view count. Unknown ids are a no-op.
func (r *JobRepository) IncrementViews(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.increment("views", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		r.logger.Debug("view not counted, job not found", "id", id)
	}
	return nil
}

// incrementApplications is called by [ApplicationRepository.Create] while it holds its own lock.
func (r *JobRepository) incrementApplications(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.increment("applications", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: job %s removed before its counter was updated", shared.ErrUnknownReference, id)
	}
	return nil
}

func (r *JobRepository) increment(column, id string) (int64, error) {
	query := fmt.Sprintf(`UPDATE jobs SET %[1]s = %[1]s + 1 WHERE id = ?`, column)
	result, err := r.db.Exec(query, id)
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", column, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

// List returns jobs matching filter, newest first.
func (r *JobRepository) List(filter models.JobFilter) ([]*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1 = 1`
	var args []any

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	if filter.Type != "" {
		query += ` AND job_type = ?`
		args = append(args, string(filter.Type))
	}
	query += ` ORDER BY created_at DESC, sequence DESC`

	jobs, err := queryAll(r.db, query, args, scanJob)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	matched := make([]*models.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Matches(filter) {
			matched = append(matched, job)
		}
	}
	return matched, nil
}

func scanJob(row scanner) (*models.Job, error) {
	var (
		job       models.Job
		jobType   string
		tags      string
		skills    string
		level     string
		status    string
		createdAt time.Time
	)

	err := row.Scan(&job.ID, &job.UserID, &job.Title, &job.Description, &jobType, &tags, &skills, &level,
		&job.Location, &job.Budget, &status, &job.Views, &job.Applications, &createdAt)
	if err != nil {
		return nil, err
	}

	if job.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	if job.RequiredSkills, err = decodeList(skills); err != nil {
		return nil, err
	}
	job.Type = models.JobType(jobType)
	job.ExperienceLevel = models.ExperienceLevel(level)
	job.Status = models.JobStatus(status)
	job.CreatedAt = createdAt.UTC()
	return &job, nil
}
