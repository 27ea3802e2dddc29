package matching

import (
	"math"
	"unicode/utf8"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

const (
	SkillWeight        = 40
	TagWeight          = 25
	ExperienceWeight   = 20
	CompletenessWeight = 15

	// MaxScore is the sum of every weight.
	MaxScore = SkillWeight + TagWeight + ExperienceWeight + CompletenessWeight

	// neutralExperience is reported in the breakdown when either level is missing or unknown.
	neutralExperience = 50

	// bioMinLength is the rune count a bio must exceed to count toward completeness.
	bioMinLength = 50

	profileFields = 5
)

// Breakdown holds per-criterion percentages in [0, 100], each rounded on its own.
type Breakdown struct {
	SkillMatch          int `json:"skillMatch"`
	TagMatch            int `json:"tagMatch"`
	ExperienceMatch     int `json:"experienceMatch"`
	ProfileCompleteness int `json:"profileCompleteness"`
}

// Result is a match score in [0, MaxScore] with its breakdown.
type Result struct {
	Score     int       `json:"score"`
	MaxScore  int       `json:"maxScore"`
	Breakdown Breakdown `json:"breakdown"`
}

// Score computes how well user fits job.
//
// When either experience level is missing or unrecognised the experience criterion contributes
// nothing to the score while the breakdown shows a neutral 50.
func Score(user *models.User, job *models.Job) Result {
	skills := overlap(user.Skills, job.RequiredSkills)
	tags := overlap(user.Interests, job.Tags)
	experience, rated := experienceRatio(user.ExperienceLevel, job.ExperienceLevel)
	completeness := profileCompleteness(user)

	total := skills*SkillWeight + tags*TagWeight + completeness*CompletenessWeight
	experienceMatch := neutralExperience
	if rated {
		total += experience * ExperienceWeight
		experienceMatch = percent(experience)
	}

	return Result{
		Score:    int(math.Round(total)),
		MaxScore: MaxScore,
		Breakdown: Breakdown{
			SkillMatch:          percent(skills),
			TagMatch:            percent(tags),
			ExperienceMatch:     experienceMatch,
			ProfileCompleteness: percent(completeness),
		},
	}
}

// overlap returns the fraction of wanted covered by have, comparing case-folded sets.
// An empty wanted list yields 0.
func overlap(have, wanted []string) float64 {
	if len(have) == 0 || len(wanted) == 0 {
		return 0
	}

	required := shared.FoldSet(wanted)
	matched := 0
	for item := range shared.FoldSet(have) {
		if _, ok := required[item]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

// experienceRatio returns 1 when the seeker meets the job's level and (s+1)/(j+1) otherwise.
// rated is false when either level cannot be ranked.
func experienceRatio(seeker, job models.ExperienceLevel) (ratio float64, rated bool) {
	s, ok := seeker.Rank()
	if !ok {
		return 0, false
	}
	j, ok := job.Rank()
	if !ok {
		return 0, false
	}
	if s >= j {
		return 1, true
	}
	return float64(s+1) / float64(j+1), true
}

func profileCompleteness(user *models.User) float64 {
	filled := 0
	if user.Name != "" {
		filled++
	}
	if utf8.RuneCountInString(user.Bio) > bioMinLength {
		filled++
	}
	if len(user.Skills) > 0 {
		filled++
	}
	if user.ExperienceLevel != "" {
		filled++
	}
	if user.ProfilePicture != "" {
		filled++
	}
	return float64(filled) / profileFields
}

func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
