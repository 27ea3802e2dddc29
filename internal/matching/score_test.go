package matching

import (
	"strings"
	"testing"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/stretchr/testify/assert"
)

func completeSeeker() *models.User {
	return &models.User{
		Name:            "Ada",
		Bio:             strings.Repeat("b", 51),
		Skills:          []string{"Go", "SQL"},
		Interests:       []string{"ai"},
		ExperienceLevel: models.Advanced,
		ProfilePicture:  "https://example.com/ada.png",
	}
}

func TestScore(t *testing.T) {
	t.Run("WorkedExample", func(t *testing.T) {
		user := completeSeeker()
		job := &models.Job{
			RequiredSkills:  []string{"go", "sql", "rust"},
			Tags:            []string{"AI", "web"},
			ExperienceLevel: models.Intermediate,
		}

		got := Score(user, job)

		assert.Equal(t, Breakdown{SkillMatch: 67, TagMatch: 50, ExperienceMatch: 100, ProfileCompleteness: 100}, got.Breakdown)
		assert.Equal(t, 74, got.Score)
		assert.Equal(t, 100, got.MaxScore)
	})

	t.Run("SkillPercentage", func(t *testing.T) {
		tests := []struct {
			name     string
			skills   []string
			required []string
			want     int
		}{
			{name: "none required", skills: []string{"Go"}, required: nil, want: 0},
			{name: "no skills", skills: nil, required: []string{"Go"}, want: 0},
			{name: "all match folded", skills: []string{"GO", "sql"}, required: []string{"go", "SQL"}, want: 100},
			{name: "one of four", skills: []string{"Go"}, required: []string{"Go", "SQL", "Rust", "C"}, want: 25},
			{name: "duplicates count once", skills: []string{"Go", "go", "GO"}, required: []string{"Go", "Rust"}, want: 50},
			{name: "non-ascii fold", skills: []string{"ÉCOLE"}, required: []string{"école"}, want: 100},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := Score(&models.User{Skills: tt.skills}, &models.Job{RequiredSkills: tt.required})
				assert.Equal(t, tt.want, got.Breakdown.SkillMatch)
			})
		}
	})

	t.Run("Experience", func(t *testing.T) {
		// A seeker with only a level set also earns 3 points of profile completeness.
		tests := []struct {
			name      string
			seeker    models.ExperienceLevel
			job       models.ExperienceLevel
			breakdown int
			score     int
		}{
			{name: "meets", seeker: models.Intermediate, job: models.Intermediate, breakdown: 100, score: 23},
			{name: "exceeds", seeker: models.Expert, job: models.Beginner, breakdown: 100, score: 23},
			{name: "folded case", seeker: "ADVANCED", job: "advanced", breakdown: 100, score: 23},
			{name: "below", seeker: models.Beginner, job: models.Expert, breakdown: 25, score: 8},
			{name: "one below", seeker: models.Intermediate, job: models.Advanced, breakdown: 67, score: 16},
			{name: "seeker missing", seeker: "", job: models.Advanced, breakdown: 50, score: 0},
			{name: "job missing", seeker: models.Advanced, job: "", breakdown: 50, score: 3},
			{name: "unknown level", seeker: "guru", job: models.Beginner, breakdown: 50, score: 3},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := Score(&models.User{ExperienceLevel: tt.seeker}, &models.Job{ExperienceLevel: tt.job})
				assert.Equal(t, tt.breakdown, got.Breakdown.ExperienceMatch)
				assert.Equal(t, tt.score, got.Score)
			})
		}
	})

	t.Run("ProfileCompleteness", func(t *testing.T) {
		tests := []struct {
			name string
			user models.User
			want int
		}{
			{name: "empty", user: models.User{}, want: 0},
			{name: "name only", user: models.User{Name: "Ada"}, want: 20},
			{name: "bio at threshold", user: models.User{Bio: strings.Repeat("x", 50)}, want: 0},
			{name: "bio over threshold", user: models.User{Bio: strings.Repeat("x", 51)}, want: 20},
			{name: "bio counts runes", user: models.User{Bio: strings.Repeat("é", 50)}, want: 0},
			{name: "unknown level still present", user: models.User{ExperienceLevel: "guru"}, want: 20},
			{name: "complete", user: *completeSeeker(), want: 100},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := Score(&tt.user, &models.Job{})
				assert.Equal(t, tt.want, got.Breakdown.ProfileCompleteness)
			})
		}
	})

	t.Run("Bounds", func(t *testing.T) {
		users := []*models.User{{}, completeSeeker(), {Skills: []string{"a", "a", "A"}, Interests: []string{"x", "X"}}}
		jobs := []*models.Job{
			{},
			{RequiredSkills: []string{"a"}, Tags: []string{"x"}, ExperienceLevel: models.Beginner},
			{RequiredSkills: []string{"Go", "SQL"}, Tags: []string{"ai"}, ExperienceLevel: models.Expert},
		}

		for _, user := range users {
			for _, job := range jobs {
				got := Score(user, job)
				assert.GreaterOrEqual(t, got.Score, 0)
				assert.LessOrEqual(t, got.Score, got.MaxScore)
				for _, pct := range []int{got.Breakdown.SkillMatch, got.Breakdown.TagMatch, got.Breakdown.ExperienceMatch, got.Breakdown.ProfileCompleteness} {
					assert.GreaterOrEqual(t, pct, 0)
					assert.LessOrEqual(t, pct, 100)
				}
				assert.Equal(t, got, Score(user, job), "score must be deterministic")
			}
		}
	})

	t.Run("PerfectMatch", func(t *testing.T) {
		user := completeSeeker()
		job := &models.Job{RequiredSkills: []string{"go", "sql"}, Tags: []string{"AI"}, ExperienceLevel: models.Beginner}

		assert.Equal(t, MaxScore, Score(user, job).Score)
	})
}
