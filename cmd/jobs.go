package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/campusconnect/internal/formatter"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/urfave/cli/v3"
)

// JobPost creates a job owned by --user.
func (r *Runner) JobPost(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	in := models.JobInput{
		Title:          cmd.String("title"),
		Description:    cmd.String("description"),
		Tags:           cmd.StringSlice("tag"),
		RequiredSkills: cmd.StringSlice("skill"),
		Location:       cmd.String("location"),
		Budget:         cmd.String("budget"),
	}
	if in.Type, err = models.ParseJobType(cmd.String("type")); err != nil {
		return err
	}
	if cmd.IsSet("experience") {
		if in.ExperienceLevel, err = models.ParseExperienceLevel(cmd.String("experience")); err != nil {
			return err
		}
	}
	if in.Status, err = models.ParseJobStatus(cmd.String("status")); err != nil {
		return err
	}

	job, err := store.Jobs.Create(cmd.String("user"), in)
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(job, pretty)
	}
	r.writePlain("✓ Posted %q\n", job.Title)
	r.writePlain("  ID: %s\n", job.ID)
	return nil
}

// JobList prints jobs matching the filter flags, newest first.
func (r *Runner) JobList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	filter, err := jobFilterFrom(cmd)
	if err != nil {
		return err
	}

	jobs, err := store.Jobs.List(filter)
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(jobs, pretty)
	}
	if len(jobs) == 0 {
		r.writePlain("No jobs found.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Jobs (%d)", len(jobs)))
	for _, job := range jobs {
		r.writePlain("%s  %-40s  %-22s  %s\n", job.ID, formatter.Truncate(job.Title, 40), job.Type, job.Status)
	}
	return nil
}

// JobShow prints a job and counts the view.
func (r *Runner) JobShow(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	if err := store.Jobs.IncrementViews(id); err != nil {
		return err
	}
	job, err := store.Jobs.Get(id)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("%w: no job with id %s", shared.ErrInvalidArgument, id)
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(job, pretty)
	}
	r.writeJob(job)
	return nil
}

// JobUpdate applies the flags that were set to a job.
func (r *Runner) JobUpdate(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	patch, err := jobPatchFrom(cmd)
	if err != nil {
		return err
	}

	job, err := store.Jobs.Update(id, patch)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("%w: no job with id %s", shared.ErrInvalidArgument, id)
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(job, pretty)
	}
	r.writePlain("✓ Job updated\n")
	r.writeJob(job)
	return nil
}

// JobDelete removes a job. Its applications and messages are kept.
func (r *Runner) JobDelete(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: job id", shared.ErrMissingArgument)
	}

	deleted, err := store.Jobs.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		r.writePlain("No job with id %s\n", id)
		return nil
	}
	r.writePlain("✓ Deleted job %s\n", id)
	return nil
}

// Apply submits an application from --user to --job.
func (r *Runner) Apply(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	app, err := store.Applications.Create(cmd.String("job"), cmd.String("user"), models.ApplicationInput{
		Message:   cmd.String("message"),
		ResumeURL: cmd.String("resume"),
	})
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(app, pretty)
	}
	r.writePlain("✓ Application submitted\n")
	r.writePlain("  ID: %s\n", app.ID)
	return nil
}

// ApplicationList prints applications filtered by job, applicant or status.
func (r *Runner) ApplicationList(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	filter := models.ApplicationFilter{JobID: cmd.String("job"), UserID: cmd.String("user")}
	if cmd.IsSet("status") {
		if filter.Status, err = models.ParseApplicationStatus(cmd.String("status")); err != nil {
			return err
		}
	}

	apps, err := store.Applications.List(filter)
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(apps, pretty)
	}
	if len(apps) == 0 {
		r.writePlain("No applications found.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("Applications (%d)", len(apps)))
	for _, app := range apps {
		r.writePlain("%s  job=%s  user=%s  %-11s  %s\n",
			app.ID, app.JobID, app.UserID, app.Status, app.CreatedAt.Format("2006-01-02"))
		if app.Message != "" {
			r.writePlain("    %s\n", formatter.Truncate(app.Message, 70))
		}
	}
	return nil
}

// ApplicationStatus moves an application to a new review state.
func (r *Runner) ApplicationStatus(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: application id", shared.ErrMissingArgument)
	}
	status, err := models.ParseApplicationStatus(cmd.String("status"))
	if err != nil {
		return err
	}

	app, err := store.Applications.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("%w: no application with id %s", shared.ErrInvalidArgument, id)
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(app, pretty)
	}
	r.writePlain("✓ Application %s is now %s\n", app.ID, app.Status)
	return nil
}

func jobFilterFrom(cmd *cli.Command) (models.JobFilter, error) {
	filter := models.JobFilter{
		UserID:     cmd.String("user"),
		SearchText: cmd.String("search"),
		Tags:       cmd.StringSlice("tag"),
	}
	var err error
	if cmd.IsSet("status") {
		if filter.Status, err = models.ParseJobStatus(cmd.String("status")); err != nil {
			return filter, err
		}
	}
	if cmd.IsSet("type") {
		if filter.Type, err = models.ParseJobType(cmd.String("type")); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func jobPatchFrom(cmd *cli.Command) (models.JobPatch, error) {
	var patch models.JobPatch
	if cmd.IsSet("title") {
		patch.Title = stringPtr(cmd.String("title"))
	}
	if cmd.IsSet("description") {
		patch.Description = stringPtr(cmd.String("description"))
	}
	if cmd.IsSet("location") {
		patch.Location = stringPtr(cmd.String("location"))
	}
	if cmd.IsSet("budget") {
		patch.Budget = stringPtr(cmd.String("budget"))
	}
	if cmd.IsSet("tag") {
		patch.Tags = cmd.StringSlice("tag")
	}
	if cmd.IsSet("skill") {
		patch.RequiredSkills = cmd.StringSlice("skill")
	}
	if cmd.IsSet("type") {
		t, err := models.ParseJobType(cmd.String("type"))
		if err != nil {
			return patch, err
		}
		patch.Type = &t
	}
	if cmd.IsSet("experience") {
		level, err := models.ParseExperienceLevel(cmd.String("experience"))
		if err != nil {
			return patch, err
		}
		patch.ExperienceLevel = &level
	}
	if cmd.IsSet("status") {
		status, err := models.ParseJobStatus(cmd.String("status"))
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}
	return patch, nil
}

func (r *Runner) writeJob(job *models.Job) {
	r.writePlainHeader(job.Title)
	r.writePlain("ID:         %s\n", job.ID)
	r.writePlain("Owner:      %s\n", job.UserID)
	r.writePlain("Type:       %s\n", job.Type)
	r.writePlain("Status:     %s\n", job.Status)
	if job.ExperienceLevel != "" {
		r.writePlain("Experience: %s\n", job.ExperienceLevel)
	}
	r.writePlain("Skills:     %s\n", joinOrDash(job.RequiredSkills))
	r.writePlain("Tags:       %s\n", joinOrDash(job.Tags))
	r.writePlain("Location:   %s\n", job.Location)
	if job.Budget != "" {
		r.writePlain("Budget:     %s\n", job.Budget)
	}
	r.writePlain("Views:      %d   Applications: %d\n", job.Views, job.Applications)
	r.writePlain("Posted:     %s\n", job.CreatedAt.Format("2006-01-02"))
	if job.Description != "" {
		r.writePlainln("%s", job.Description)
	}
}

func jobTypeUsage() string {
	names := make([]string, len(models.JobTypes))
	for i, t := range models.JobTypes {
		names[i] = string(t)
	}
	return "One of: " + strings.Join(names, ", ")
}

// jobFields are shared by post and update. Required marks the fields a new posting needs.
func jobFields(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Job title", Required: required},
		&cli.StringFlag{Name: "description", Usage: "Job description"},
		&cli.StringFlag{Name: "type", Usage: jobTypeUsage(), Required: required},
		&cli.StringSliceFlag{Name: "tag", Usage: "Tag (repeatable)"},
		&cli.StringSliceFlag{Name: "skill", Usage: "Required skill (repeatable)"},
		&cli.StringFlag{Name: "experience", Usage: "beginner, intermediate, advanced or expert"},
		&cli.StringFlag{Name: "location", Usage: "Location, e.g. Remote"},
		&cli.StringFlag{Name: "budget", Usage: "Free-form budget"},
	}
}

func jobCommand(r *Runner) *cli.Command {
	statusFlag := &cli.StringFlag{Name: "status", Usage: "draft or active", Value: string(models.JobActive)}

	return &cli.Command{
		Name:  "job",
		Usage: "Post, browse and manage jobs",
		Commands: []*cli.Command{
			{
				Name:  "post",
				Usage: "Post a new job",
				Flags: withOutputFlags(append(jobFields(true),
					&cli.StringFlag{Name: "user", Usage: "Owner user ID", Required: true},
					statusFlag,
				)...),
				Action: r.JobPost,
			},
			{
				Name:  "list",
				Usage: "List jobs, newest first",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "user", Usage: "Only jobs owned by this user"},
					&cli.StringFlag{Name: "status", Usage: "draft or active"},
					&cli.StringFlag{Name: "type", Usage: jobTypeUsage()},
					&cli.StringFlag{Name: "search", Usage: "Text to find in title, description or tags"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Match any of these tags (repeatable)"},
				),
				Action: r.JobList,
			},
			{
				Name:      "show",
				Usage:     "Show a job and record a view",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     outputFlags(),
				Action:    r.JobShow,
			},
			{
				Name:      "update",
				Usage:     "Update job fields",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: withOutputFlags(append(jobFields(false),
					&cli.StringFlag{Name: "status", Usage: "draft or active"},
				)...),
				Action: r.JobUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a job",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.JobDelete,
			},
		},
	}
}

func applyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Apply to a job",
		Flags: withOutputFlags(
			&cli.StringFlag{Name: "job", Usage: "Job ID", Required: true},
			&cli.StringFlag{Name: "user", Usage: "Applicant user ID", Required: true},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Cover message"},
			&cli.StringFlag{Name: "resume", Usage: "Resume URL"},
		),
		Action: r.Apply,
	}
}

func applicationCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "application",
		Aliases: []string{"app"},
		Usage:   "Review applications",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List applications, newest first",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "job", Usage: "Only applications to this job"},
					&cli.StringFlag{Name: "user", Usage: "Only applications from this user"},
					&cli.StringFlag{Name: "status", Usage: "pending, shortlisted, rejected or accepted"},
				),
				Action: r.ApplicationList,
			},
			{
				Name:      "status",
				Usage:     "Change an application's status",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "status", Usage: "pending, shortlisted, rejected or accepted", Required: true},
				),
				Action: r.ApplicationStatus,
			},
		},
	}
}
