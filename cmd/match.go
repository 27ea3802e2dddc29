package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/campusconnect/internal/formatter"
	"github.com/desertthunder/campusconnect/internal/matching"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/desertthunder/campusconnect/internal/tasks"
	"github.com/desertthunder/campusconnect/internal/ui"
	"github.com/urfave/cli/v3"
)

// dashboardRecommendations is how many picks the seeker half of the dashboard shows.
const dashboardRecommendations = 5

// MatchScore scores one user against one job.
func (r *Runner) MatchScore(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	user, err := store.Users.Get(cmd.String("user"))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no user with id %s", shared.ErrInvalidArgument, cmd.String("user"))
	}
	job, err := store.Jobs.Get(cmd.String("job"))
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("%w: no job with id %s", shared.ErrInvalidArgument, cmd.String("job"))
	}

	result := matching.Score(user, job)
	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(result, pretty)
	}

	b := result.Breakdown
	r.writePlainHeader(fmt.Sprintf("%s ↔ %s", user.Name, job.Title))
	r.writePlain("Match:      %s (%s)\n", ui.ScoreBadge(result.Score), ui.LevelFor(result.Score))
	r.writePlain("Skills:     %3d%%\n", b.SkillMatch)
	r.writePlain("Tags:       %3d%%\n", b.TagMatch)
	r.writePlain("Experience: %3d%%\n", b.ExperienceMatch)
	r.writePlain("Profile:    %3d%%\n", b.ProfileCompleteness)
	return nil
}

// MatchRecommend ranks active jobs for a user.
func (r *Runner) MatchRecommend(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.open(); err != nil {
		return err
	}

	userID := cmd.String("user")
	limit := r.recommendLimit()
	if cmd.IsSet("limit") {
		limit = int(cmd.Int("limit"))
		if limit < 0 {
			return fmt.Errorf("%w: --limit must not be negative, got %d", shared.ErrInvalidFlag, limit)
		}
	}

	recs, err := r.engine.Recommendations(userID, limit)
	if err != nil {
		return err
	}
	if recs == nil {
		return fmt.Errorf("%w: no user with id %s", shared.ErrInvalidArgument, userID)
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(recs, pretty)
	}
	r.writePlainHeader("Recommended for you")
	return formatter.WriteRecommendations(r.output, recs)
}

type dashboard struct {
	User            *models.User              `json:"user"`
	Postings        *tasks.FinderSummary      `json:"postings"`
	Recommendations []matching.Recommendation `json:"recommendations"`
	UnreadMessages  int                       `json:"unreadMessages"`
}

// Dashboard shows a user's postings with their totals, top recommendations and unread count.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	userID := cmd.StringArg("user")
	if userID == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}
	user, err := store.Users.Get(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no user with id %s", shared.ErrInvalidArgument, userID)
	}

	d := dashboard{User: user}
	if d.Postings, err = r.engine.Summarize(userID); err != nil {
		return err
	}
	if d.Recommendations, err = r.engine.Recommendations(userID, dashboardRecommendations); err != nil {
		return err
	}
	if d.UnreadMessages, err = store.Messages.CountUnread(userID); err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(d, pretty)
	}

	r.writePlain("%s\n", ui.Styles.Title("Welcome back, "+user.Name))
	if d.UnreadMessages > 0 {
		r.writePlain("Messages %s\n", ui.UnreadBadge(d.UnreadMessages))
	}

	if len(d.Postings.Jobs) > 0 {
		r.writePlainln("Your postings")
		r.writePlain("Active: %d   Views: %d   Applications: %d\n",
			d.Postings.ActiveJobs, d.Postings.TotalViews, d.Postings.TotalApplications)
		for _, job := range d.Postings.Jobs {
			r.writePlain("  %-40s  %-6s  %4d views  %3d applied\n",
				formatter.Truncate(job.Title, 40), job.Status, job.Views, job.Applications)
		}
	}

	r.writePlainln("Top matches")
	if len(d.Recommendations) == 0 {
		r.writePlain("%s\n", ui.Styles.Help("No active jobs to match yet."))
		return nil
	}
	for _, rec := range d.Recommendations {
		r.writePlain("  %s  %s\n", ui.ScoreBadge(rec.Result.Score), rec.Job.Title)
	}
	return nil
}

func matchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Score and rank jobs against a profile",
		Commands: []*cli.Command{
			{
				Name:  "score",
				Usage: "Score one user against one job",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "user", Usage: "User ID", Required: true},
					&cli.StringFlag{Name: "job", Usage: "Job ID", Required: true},
				),
				Action: r.MatchScore,
			},
			{
				Name:  "recommend",
				Usage: "Rank active jobs for a user",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "user", Usage: "User ID", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "Maximum recommendations; 0 returns all"},
				),
				Action: r.MatchRecommend,
			},
		},
	}
}

func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "dashboard",
		Usage:     "Show postings, top matches and unread messages for a user",
		Arguments: []cli.Argument{&cli.StringArg{Name: "user"}},
		Flags:     outputFlags(),
		Action:    r.Dashboard,
	}
}
