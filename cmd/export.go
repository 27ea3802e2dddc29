package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/desertthunder/campusconnect/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportJobs writes every finder's job board to a directory with a manifest.
func (r *Runner) ExportJobs(ctx context.Context, cmd *cli.Command) error {
	workers := int(cmd.Int("workers"))
	if workers < 0 {
		return fmt.Errorf("%w: --workers must not be negative, got %d", shared.ErrInvalidFlag, workers)
	}
	if _, err := r.open(); err != nil {
		return err
	}

	filter, err := jobFilterFrom(cmd)
	if err != nil {
		return err
	}
	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("out"),
		NumWorkers: workers,
		Filter:     filter,
	}

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.CollectJobs:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.ExportJobs:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			}
		}
	}()

	result, err := r.engine.ExportJobs(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Boards:     %d\n", result.TotalBoards)
	r.writePlain("Successful: %d\n", result.SuccessfulExports)
	if result.FailedExports > 0 {
		r.writePlain("Failed:     %d\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  ✗ %s: %v\n", res.OwnerName, res.Error)
			}
		}
	}
	r.writePlain("Directory:  %s\n", result.OutputDirectory)
	r.writePlain("Manifest:   %s\n", result.ManifestPath)
	return nil
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export data to files",
		Commands: []*cli.Command{
			{
				Name:  "jobs",
				Usage: "Export each finder's jobs as a board",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: " + strings.Join(tasks.ExportFormats, ", "),
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: jobs_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 4,
					},
					&cli.StringFlag{Name: "user", Usage: "Only this finder's jobs"},
					&cli.StringFlag{Name: "status", Usage: "draft or active"},
					&cli.StringFlag{Name: "type", Usage: jobTypeUsage()},
					&cli.StringFlag{Name: "search", Usage: "Text to find in title, description or tags"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Match any of these tags (repeatable)"},
				},
				Action: r.ExportJobs,
			},
		},
	}
}
