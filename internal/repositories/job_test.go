package repositories

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

func TestJobRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		s := setupTestStore(t)
		owner := mustCreateUser(t, s, "finder@example.com")

		job, err := s.Jobs.Create(owner.ID, models.JobInput{
			Title:          "Robotics club build",
			Type:           models.AcademicProject,
			Tags:           []string{"hardware"},
			RequiredSkills: []string{"C++"},
		})
		if err != nil {
			t.Fatalf("failed to create job: %v", err)
		}

		if job.ID == "" {
			t.Error("job ID should be set after creation")
		}
		if job.Status != models.JobActive {
			t.Errorf("expected default status %s, got %s", models.JobActive, job.Status)
		}
		if job.Views != 0 || job.Applications != 0 {
			t.Errorf("expected zeroed counters, got views=%d applications=%d", job.Views, job.Applications)
		}
	})

	t.Run("CreateErrors", func(t *testing.T) {
		s := setupTestStore(t)
		owner := mustCreateUser(t, s, "finder@example.com")

		tests := []struct {
			name   string
			userID string
			input  models.JobInput
			want   error
		}{
			{name: "unknown owner", userID: "ghost", input: models.JobInput{Title: "Orphan"}, want: shared.ErrUnknownReference},
			{name: "missing title", userID: owner.ID, input: models.JobInput{}, want: shared.ErrInvalidInput},
			{name: "unknown type", userID: owner.ID, input: models.JobInput{Title: "X", Type: "gig"}, want: shared.ErrInvalidInput},
			{name: "unknown status", userID: owner.ID, input: models.JobInput{Title: "X", Status: "archived"}, want: shared.ErrInvalidInput},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := s.Jobs.Create(tt.userID, tt.input)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := setupTestStore(t)

		job, err := s.Jobs.Get("missing")
		if err != nil || job != nil {
			t.Fatalf("expected (nil, nil), got (%v, %v)", job, err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		s := setupTestStore(t)
		owner := mustCreateUser(t, s, "finder@example.com")
		job := mustCreateJob(t, s, owner.ID, "Draft title")
		if err := s.Jobs.IncrementViews(job.ID); err != nil {
			t.Fatalf("failed to increment views: %v", err)
		}

		title := "Final title"
		status := models.JobDraft
		updated, err := s.Jobs.Update(job.ID, models.JobPatch{Title: &title, Status: &status, Tags: []string{"ai"}})
		if err != nil {
			t.Fatalf("failed to update job: %v", err)
		}

		if updated.Title != title || updated.Status != models.JobDraft {
			t.Errorf("expected patched title and status, got %q %q", updated.Title, updated.Status)
		}
		if updated.Views != 1 {
			t.Errorf("expected views to survive update, got %d", updated.Views)
		}
		if !updated.CreatedAt.Equal(job.CreatedAt) {
			t.Errorf("expected created at to be unchanged")
		}
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		s := setupTestStore(t)

		title := "Nothing"
		job, err := s.Jobs.Update("missing", models.JobPatch{Title: &title})
		if err != nil || job != nil {
			t.Fatalf("expected (nil, nil), got (%v, %v)", job, err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s := setupTestStore(t)
		owner := mustCreateUser(t, s, "finder@example.com")
		job := mustCreateJob(t, s, owner.ID, "Short lived")

		deleted, err := s.Jobs.Delete(job.ID)
		if err != nil {
			t.Fatalf("failed to delete job: %v", err)
		}
		if !deleted {
			t.Error("expected delete to report true")
		}

		deleted, err = s.Jobs.Delete(job.ID)
		if err != nil {
			t.Fatalf("failed to repeat delete: %v", err)
		}
		if deleted {
			t.Error("expected second delete to report false")
		}

		if got, _ := s.Jobs.Get(job.ID); got != nil {
			t.Error("expected job to be gone")
		}
	})

	t.Run("IncrementViews", func(t *testing.T) {
		s := setupTestStore(t)
		owner := mustCreateUser(t, s, "finder@example.com")
		job := mustCreateJob(t, s, owner.ID, "Popular")

		const viewers = 25
		const editors = 10
		title := "Popular (edited)"
		var wg sync.WaitGroup
		for range viewers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := s.Jobs.IncrementViews(job.ID); err != nil {
					t.Errorf("failed to increment views: %v", err)
				}
			}()
		}
		for range editors {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := s.Jobs.Update(job.ID, models.JobPatch{Title: &title}); err != nil {
					t.Errorf("failed to update job: %v", err)
				}
			}()
		}
		wg.Wait()

		retrieved, err := s.Jobs.Get(job.ID)
		if err != nil {
			t.Fatalf("failed to get job: %v", err)
		}
		if retrieved.Views != viewers {
			t.Errorf("expected %d views with concurrent edits, got %d", viewers, retrieved.Views)
		}
		if retrieved.Title != title {
			t.Errorf("expected title %q, got %q", title, retrieved.Title)
		}

		if err := s.Jobs.IncrementViews("missing"); err != nil {
			t.Errorf("expected missing job to be a no-op, got %v", err)
		}
	})

	t.Run("ListOrdering", func(t *testing.T) {
		s := setupTestStore(t)
		owner := mustCreateUser(t, s, "finder@example.com")
		first := mustCreateJob(t, s, owner.ID, "First")
		second := mustCreateJob(t, s, owner.ID, "Second")
		third := mustCreateJob(t, s, owner.ID, "Third")

		jobs, err := s.Jobs.List(models.JobFilter{})
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}

		want := []string{third.ID, second.ID, first.ID}
		if len(jobs) != len(want) {
			t.Fatalf("expected %d jobs, got %d", len(want), len(jobs))
		}
		for i, id := range want {
			if jobs[i].ID != id {
				t.Errorf("expected jobs[%d] = %s, got %s", i, id, jobs[i].ID)
			}
		}
	})

	t.Run("ListSameInstant", func(t *testing.T) {
		frozen := time.Date(2025, time.May, 5, 12, 0, 0, 0, time.UTC)
		s := NewStore(setupTestDB(t), StoreOpts{Clock: func() time.Time { return frozen }})
		owner := mustCreateUser(t, s, "finder@example.com")
		first := mustCreateJob(t, s, owner.ID, "First")
		second := mustCreateJob(t, s, owner.ID, "Second")

		jobs, err := s.Jobs.List(models.JobFilter{})
		if err != nil {
			t.Fatalf("failed to list jobs: %v", err)
		}
		if len(jobs) != 2 || jobs[0].ID != second.ID || jobs[1].ID != first.ID {
			t.Errorf("expected later insert first on equal timestamps")
		}
	})

	t.Run("ListFilters", func(t *testing.T) {
		s := setupTestStore(t)
		alice := mustCreateUser(t, s, "alice@example.com")
		bob := mustCreateUser(t, s, "bob@example.com")

		draft := models.JobDraft
		mustInput := func(userID string, in models.JobInput) *models.Job {
			job, err := s.Jobs.Create(userID, in)
			if err != nil {
				t.Fatalf("failed to create job: %v", err)
			}
			return job
		}
		ml := mustInput(alice.ID, models.JobInput{Title: "ML research assistant", Type: models.AcademicProject, Tags: []string{"AI", "python"}})
		web := mustInput(alice.ID, models.JobInput{Title: "Frontend for startup", Description: "React work", Type: models.StartupCollaboration, Tags: []string{"web"}})
		hack := mustInput(bob.ID, models.JobInput{Title: "Hackathon teammate", Type: models.CompetitionsHackathon, Tags: []string{"ai"}, Status: draft})

		tests := []struct {
			name   string
			filter models.JobFilter
			want   []string
		}{
			{name: "no filter", filter: models.JobFilter{}, want: []string{hack.ID, web.ID, ml.ID}},
			{name: "by owner", filter: models.JobFilter{UserID: bob.ID}, want: []string{hack.ID}},
			{name: "by status", filter: models.JobFilter{Status: models.JobActive}, want: []string{web.ID, ml.ID}},
			{name: "by type", filter: models.JobFilter{Type: models.StartupCollaboration}, want: []string{web.ID}},
			{name: "search title folds case", filter: models.JobFilter{SearchText: "RESEARCH"}, want: []string{ml.ID}},
			{name: "search description", filter: models.JobFilter{SearchText: "react"}, want: []string{web.ID}},
			{name: "search tags", filter: models.JobFilter{SearchText: "pyth"}, want: []string{ml.ID}},
			{name: "tags are exact", filter: models.JobFilter{Tags: []string{"ai"}}, want: []string{hack.ID}},
			{name: "any tag matches", filter: models.JobFilter{Tags: []string{"AI", "web"}}, want: []string{web.ID, ml.ID}},
			{name: "combined", filter: models.JobFilter{UserID: alice.ID, SearchText: "startup"}, want: []string{web.ID}},
			{name: "nothing matches", filter: models.JobFilter{SearchText: "quantum"}, want: []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				jobs, err := s.Jobs.List(tt.filter)
				if err != nil {
					t.Fatalf("failed to list jobs: %v", err)
				}
				if len(jobs) != len(tt.want) {
					t.Fatalf("expected %d jobs, got %d", len(tt.want), len(jobs))
				}
				for i, id := range tt.want {
					if jobs[i].ID != id {
						t.Errorf("expected jobs[%d] = %s, got %s (%s)", i, id, jobs[i].ID, jobs[i].Title)
					}
				}
			})
		}
	})
}
