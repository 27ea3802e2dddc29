package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/desertthunder/campusconnect/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when it is missing, then opens the database and runs migrations.
//
// With [seed] on_setup enabled, or --seed, the demo data set is loaded into an empty store.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load created config, using defaults", "error", err)
		} else {
			r.config = config
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if _, err := r.open(); err != nil {
		return err
	}
	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	r.writePlain("✓ Database ready: %s\n", r.config.Database.Path)

	if r.config.Seed.OnSetup || cmd.Bool("seed") {
		return r.runSeed(ctx)
	}
	return nil
}

// Seed loads the demo users and jobs into an empty store.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.open(); err != nil {
		return err
	}
	return r.runSeed(ctx)
}

func (r *Runner) runSeed(ctx context.Context) error {
	progressCh := make(chan tasks.ProgressUpdate, 20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.SeedUsers:
				r.writePlain("👤 %s\n", update.Message)
			case tasks.SeedJobs:
				r.writePlain("📌 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.Seed(ctx, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}
	if result.Skipped {
		r.writePlain("Store already has users, nothing seeded.\n")
		return nil
	}

	r.writePlain("\n✓ Seeded %d users and %d jobs\n", len(result.Users), len(result.Jobs))
	for _, user := range result.Users {
		r.writePlain("  %s  %s <%s>\n", user.ID, user.Name, user.Email)
	}
	return nil
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and storage",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Create the database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "seed",
						Usage: "Load demo data after migrating",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "seed",
		Usage:  "Load demo users and jobs into an empty database",
		Action: r.Seed,
	}
}
