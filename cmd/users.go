package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserCreate signs up a new user.
func (r *Runner) UserCreate(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	user, err := store.Users.Create(
		cmd.String("email"), cmd.String("password"), cmd.String("name"),
		cmd.StringSlice("skill"), cmd.String("bio"),
	)
	if err != nil {
		return err
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(user, pretty)
	}
	r.writePlain("✓ Account created for %s\n", user.Name)
	r.writePlain("  ID: %s\n", user.ID)
	return nil
}

// UserLogin checks an email and password pair.
func (r *Runner) UserLogin(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	user, err := store.Users.Authenticate(cmd.String("email"), cmd.String("password"))
	if err != nil {
		return err
	}
	if user == nil {
		return shared.ErrAuthFailed
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(user, pretty)
	}
	r.writePlain("✓ Welcome back, %s\n", user.Name)
	r.writePlain("  ID: %s\n", user.ID)
	return nil
}

// UserShow prints a profile.
func (r *Runner) UserShow(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	user, err := store.Users.Get(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no user with id %s", shared.ErrInvalidArgument, id)
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(user, pretty)
	}
	r.writeProfile(user)
	return nil
}

// UserUpdate applies the flags that were set to a profile.
func (r *Runner) UserUpdate(ctx context.Context, cmd *cli.Command) error {
	store, err := r.open()
	if err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: user id", shared.ErrMissingArgument)
	}

	patch, err := userPatchFrom(cmd)
	if err != nil {
		return err
	}

	user, err := store.Users.Update(id, patch)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: no user with id %s", shared.ErrInvalidArgument, id)
	}

	if asJSON, pretty := jsonRequested(cmd); asJSON {
		return r.writeJSON(user, pretty)
	}
	r.writePlain("✓ Profile updated\n")
	r.writeProfile(user)
	return nil
}

func userPatchFrom(cmd *cli.Command) (models.UserPatch, error) {
	var patch models.UserPatch
	if cmd.IsSet("email") {
		patch.Email = stringPtr(cmd.String("email"))
	}
	if cmd.IsSet("password") {
		patch.Secret = stringPtr(cmd.String("password"))
	}
	if cmd.IsSet("name") {
		patch.Name = stringPtr(cmd.String("name"))
	}
	if cmd.IsSet("bio") {
		patch.Bio = stringPtr(cmd.String("bio"))
	}
	if cmd.IsSet("picture") {
		patch.ProfilePicture = stringPtr(cmd.String("picture"))
	}
	if cmd.IsSet("skill") {
		patch.Skills = cmd.StringSlice("skill")
	}
	if cmd.IsSet("interest") {
		patch.Interests = cmd.StringSlice("interest")
	}
	if cmd.IsSet("experience") {
		level, err := models.ParseExperienceLevel(cmd.String("experience"))
		if err != nil {
			return patch, err
		}
		patch.ExperienceLevel = &level
	}
	return patch, nil
}

func (r *Runner) writeProfile(user *models.User) {
	r.writePlainHeader(user.Name)
	r.writePlain("ID:         %s\n", user.ID)
	r.writePlain("Email:      %s\n", user.Email)
	if user.ExperienceLevel != "" {
		r.writePlain("Experience: %s\n", user.ExperienceLevel)
	}
	r.writePlain("Skills:     %s\n", joinOrDash(user.Skills))
	r.writePlain("Interests:  %s\n", joinOrDash(user.Interests))
	if user.Bio != "" {
		r.writePlain("Bio:        %s\n", user.Bio)
	}
	r.writePlain("Joined:     %s\n", user.CreatedAt.Format("2006-01-02"))
}

func stringPtr(s string) *string { return &s }

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// userFlags are shared by create and update. Required marks the signup fields.
func userFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "email", Usage: "Email address", Required: required},
		&cli.StringFlag{Name: "password", Usage: "Account password", Required: required},
		&cli.StringFlag{Name: "name", Usage: "Display name", Required: required},
		&cli.StringSliceFlag{Name: "skill", Usage: "Skill (repeatable)"},
		&cli.StringFlag{Name: "bio", Usage: "Short bio"},
	}
}

// outputFlags are the --json and --pretty pair accepted by every read command.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
		},
	}
}

func withOutputFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, outputFlags()...)
}

func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage accounts and profiles",
		Commands: []*cli.Command{
			{
				Name:   "create",
				Usage:  "Sign up a new user",
				Flags:  withOutputFlags(userFlags(true)...),
				Action: r.UserCreate,
			},
			{
				Name:  "login",
				Usage: "Check credentials and print the account id",
				Flags: withOutputFlags(
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Account password", Required: true},
				),
				Action: r.UserLogin,
			},
			{
				Name:      "show",
				Usage:     "Show a profile",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     outputFlags(),
				Action:    r.UserShow,
			},
			{
				Name:      "update",
				Usage:     "Update profile fields",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags: withOutputFlags(append(userFlags(false),
					&cli.StringSliceFlag{Name: "interest", Usage: "Interest (repeatable)"},
					&cli.StringFlag{Name: "experience", Usage: "beginner, intermediate, advanced or expert"},
					&cli.StringFlag{Name: "picture", Usage: "Profile picture URL"},
				)...),
				Action: r.UserUpdate,
			},
		},
	}
}
