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

const userColumns = `id, email, name, skills, interests, bio, experience_level, profile_picture, created_at`

// UserRepository persists [models.User] records and their credential secrets.
//
// Emails are unique and compared case-sensitively.
type UserRepository struct {
	collection
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB, logger *log.Logger, now func() time.Time) *UserRepository {
	return &UserRepository{collection: newCollection(db, "users", logger, now)}
}

// Create registers a new user. It fails with [shared.ErrDuplicateEmail] when the email is taken.
func (r *UserRepository) Create(email, secret, name string, skills []string, bio string) (*models.User, error) {
	user := models.NewUser(email, name, skills, bio)
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	taken, err := r.emailTaken(email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		r.logger.Warn("email already registered", "email", email)
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, email)
	}

	user.ID = shared.GenerateID()
	user.CreatedAt = r.timestamp()

	skillsJSON, err := encodeList(user.Skills)
	if err != nil {
		return nil, err
	}
	interestsJSON, err := encodeList(user.Interests)
	if err != nil {
		return nil, err
	}

	err = r.insert(func(tx *sql.Tx, sequence int) error {
		query := `
			INSERT INTO users (id, sequence, email, secret, name, skills, interests, bio, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err := tx.Exec(query, user.ID, sequence, user.Email, secret, user.Name, skillsJSON, interestsJSON, user.Bio, user.CreatedAt)
		return err
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	r.logCreated(user)
	return user, nil
}

// Authenticate returns the user whose email and secret both match exactly, or nil.
func (r *UserRepository) Authenticate(email, secret string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND secret = ?`

	user, err := scanUser(r.db.QueryRow(query, email, secret))
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Debug("authentication rejected", "email", email)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}
	return user, nil
}

// Get retrieves a user by ID. A missing user is reported as (nil, nil).
func (r *UserRepository) Get(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	user, err := scanUser(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// Exists reports whether a user with id has been created.
func (r *UserRepository) Exists(id string) (bool, error) {
	return r.exists(id)
}

// Update merges patch over the stored profile. Unknown ids yield (nil, nil).
//
// Changing the email to one held by another user fails with [shared.ErrDuplicateEmail].
func (r *UserRepository) Update(id string, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		r.logger.Debug("update skipped, user not found", "id", id)
		return nil, nil
	}

	if patch.Email != nil && *patch.Email != user.Email {
		taken, err := r.emailTaken(*patch.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, *patch.Email)
		}
	}

	patch.Apply(user)
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	skillsJSON, err := encodeList(user.Skills)
	if err != nil {
		return nil, err
	}
	interestsJSON, err := encodeList(user.Interests)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE users
		SET email = ?, name = ?, skills = ?, interests = ?, bio = ?, experience_level = ?, profile_picture = ?
		WHERE id = ?
	`
	_, err = r.db.Exec(query, user.Email, user.Name, skillsJSON, interestsJSON, user.Bio,
		string(user.ExperienceLevel), user.ProfilePicture, id)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, user.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if patch.Secret != nil {
		if _, err := r.db.Exec(`UPDATE users SET secret = ? WHERE id = ?`, *patch.Secret, id); err != nil {
			return nil, fmt.Errorf("failed to update secret: %w", err)
		}
	}

	r.logger.Info("user updated", "id", id)
	return user, nil
}

// List returns users in signup order.
func (r *UserRepository) List(filter models.UserFilter) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if filter.Email != "" {
		query += ` WHERE email = ?`
		args = append(args, filter.Email)
	}
	query += ` ORDER BY created_at ASC, sequence ASC`

	users, err := queryAll(r.db, query, args, scanUser)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) emailTaken(email, exceptID string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id != ?)`
	if err := r.db.QueryRow(query, email, exceptID).Scan(&taken); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return taken, nil
}

func scanUser(row scanner) (*models.User, error) {
	var (
		user      models.User
		skills    string
		interests string
		level     string
		createdAt time.Time
	)

	err := row.Scan(&user.ID, &user.Email, &user.Name, &skills, &interests, &user.Bio, &level, &user.ProfilePicture, &createdAt)
	if err != nil {
		return nil, err
	}

	if user.Skills, err = decodeList(skills); err != nil {
		return nil, err
	}
	if user.Interests, err = decodeList(interests); err != nil {
		return nil, err
	}
	user.ExperienceLevel = models.ExperienceLevel(level)
	user.CreatedAt = createdAt.UTC()
	return &user, nil
}
