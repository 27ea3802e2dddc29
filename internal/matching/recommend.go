package matching

import (
	"slices"

	"github.com/desertthunder/campusconnect/internal/models"
)

// DefaultRecommendationLimit is the number of jobs recommended when nothing else is configured.
const DefaultRecommendationLimit = 10

// Recommendation pairs a job with the user's score against it.
type Recommendation struct {
	Job    *models.Job `json:"job"`
	Result Result      `json:"matchScore"`
}

// Recommend scores every active job for user and returns them best first, newest first among
// equal scores. A limit of zero or less returns every active job.
func Recommend(user *models.User, jobs []*models.Job, limit int) []Recommendation {
	recs := make([]Recommendation, 0, len(jobs))
	for _, job := range jobs {
		if job == nil || !job.IsActive() {
			continue
		}
		recs = append(recs, Recommendation{Job: job, Result: Score(user, job)})
	}

	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		if a.Result.Score != b.Result.Score {
			return b.Result.Score - a.Result.Score
		}
		return b.Job.CreatedAt.Compare(a.Job.CreatedAt)
	})

	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}
