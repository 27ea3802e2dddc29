package tasks

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/campusconnect/internal/models"
)

//go:embed seed.toml
var seedData []byte

// SeedUser is a demo profile.
type SeedUser struct {
	Email           string   `toml:"email"`
	Secret          string   `toml:"secret"`
	Name            string   `toml:"name"`
	Skills          []string `toml:"skills"`
	Bio             string   `toml:"bio"`
	ExperienceLevel string   `toml:"experience_level"`
	Interests       []string `toml:"interests"`
}

// SeedJob is a demo posting owned by the user with email Owner.
type SeedJob struct {
	Owner           string   `toml:"owner"`
	Title           string   `toml:"title"`
	Description     string   `toml:"description"`
	Type            string   `toml:"type"`
	Tags            []string `toml:"tags"`
	RequiredSkills  []string `toml:"required_skills"`
	ExperienceLevel string   `toml:"experience_level"`
	Location        string   `toml:"location"`
	Budget          string   `toml:"budget"`
}

// SeedSet is the full demo data set.
type SeedSet struct {
	Users []SeedUser `toml:"users"`
	Jobs  []SeedJob  `toml:"jobs"`
}

// SeedResult reports what [Engine.Seed] created.
type SeedResult struct {
	Users   []*models.User `json:"users"`
	Jobs    []*models.Job  `json:"jobs"`
	Skipped bool           `json:"skipped"`
}

// DemoData decodes the embedded demo data set.
func DemoData() (*SeedSet, error) {
	var set SeedSet
	if _, err := toml.Decode(string(seedData), &set); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return &set, nil
}

// Seed loads the demo data set when the store has no users yet.
// A store that already has users is left untouched and the result is marked skipped.
func (e *Engine) Seed(ctx context.Context, progress chan<- ProgressUpdate) (*SeedResult, error) {
	set, err := DemoData()
	if err != nil {
		return nil, err
	}
	return e.SeedWith(ctx, progress, set)
}

// SeedWith loads set when the store has no users yet.
func (e *Engine) SeedWith(ctx context.Context, progress chan<- ProgressUpdate, set *SeedSet) (*SeedResult, error) {
	existing, err := e.store.Users.List(models.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %w", err)
	}

	result := &SeedResult{Users: []*models.User{}, Jobs: []*models.Job{}}
	if len(existing) > 0 {
		e.logger.Info("seed skipped", "users", len(existing))
		e.sendProgress(progress, seedSkippedUpdate(len(existing)))
		result.Skipped = true
		return result, nil
	}

	owners := make(map[string]string, len(set.Users))
	for i, su := range set.Users {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		e.sendProgress(progress, seedUserUpdate(i+1, len(set.Users), su.Email))

		user, err := e.seedUser(su)
		if err != nil {
			return result, err
		}
		owners[user.Email] = user.ID
		result.Users = append(result.Users, user)
	}

	for i, sj := range set.Jobs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		e.sendProgress(progress, seedJobUpdate(i+1, len(set.Jobs), sj.Title))

		ownerID, ok := owners[sj.Owner]
		if !ok {
			e.logger.Warn("seed job owner not in data set", "owner", sj.Owner, "title", sj.Title)
			continue
		}

		job, err := e.seedJob(ownerID, sj)
		if err != nil {
			return result, err
		}
		result.Jobs = append(result.Jobs, job)
	}

	e.logger.Info("seed complete", "users", len(result.Users), "jobs", len(result.Jobs))
	return result, nil
}

func (e *Engine) seedUser(su SeedUser) (*models.User, error) {
	user, err := e.store.Users.Create(su.Email, su.Secret, su.Name, su.Skills, su.Bio)
	if err != nil {
		return nil, fmt.Errorf("failed to seed user %s: %w", su.Email, err)
	}

	patch := models.UserPatch{Interests: su.Interests}
	if su.ExperienceLevel != "" {
		level, err := models.ParseExperienceLevel(su.ExperienceLevel)
		if err != nil {
			return nil, err
		}
		patch.ExperienceLevel = &level
	}

	user, err = e.store.Users.Update(user.ID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to complete seed profile %s: %w", su.Email, err)
	}
	return user, nil
}

func (e *Engine) seedJob(ownerID string, sj SeedJob) (*models.Job, error) {
	jobType, err := models.ParseJobType(sj.Type)
	if err != nil {
		return nil, err
	}

	in := models.JobInput{
		Title:           sj.Title,
		Description:     sj.Description,
		Type:            jobType,
		Tags:            sj.Tags,
		RequiredSkills:  sj.RequiredSkills,
		ExperienceLevel: models.ExperienceLevel(sj.ExperienceLevel),
		Location:        sj.Location,
		Budget:          sj.Budget,
		Status:          models.JobActive,
	}

	job, err := e.store.Jobs.Create(ownerID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to seed job %q: %w", sj.Title, err)
	}
	return job, nil
}
