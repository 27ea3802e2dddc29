package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/campusconnect/internal/formatter"
	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

const (
	defaultExportWorkers = 4
	maxExportWorkers     = 10
)

// ExportFormats lists the formats [Engine.ExportJobs] accepts.
var ExportFormats = []string{"json", "csv", "markdown", "txt"}

// BulkExportOpts contains configuration for bulk job exports.
type BulkExportOpts struct {
	Format     string           // Export format: json, csv, markdown, txt
	OutputDir  string           // Base output directory (default: jobs_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 4)
	Filter     models.JobFilter // Restricts which jobs are exported
}

type boardExportJob struct {
	board *formatter.JobBoard
}

// ExportJobs writes every finder's jobs to OutputDir, one board per finder, and a manifest.
//
// Boards are written by a pool of workers. A failed board is recorded in the manifest and does not
// stop the others.
func (e *Engine) ExportJobs(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*formatter.BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = "json"
	}
	if !validFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("jobs_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultExportWorkers
	}
	if opts.NumWorkers > maxExportWorkers {
		opts.NumWorkers = maxExportWorkers
	}

	boards, err := e.collectBoards(opts.Filter)
	if err != nil {
		return nil, err
	}
	e.sendProgress(prog, collectJobsUpdate(countJobs(boards), len(boards)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &formatter.BulkExportResult{
		TotalBoards:     len(boards),
		OutputDirectory: opts.OutputDir,
		Results:         make([]formatter.BoardExportResult, 0, len(boards)),
	}

	jobs := make(chan boardExportJob, len(boards))
	results := make(chan formatter.BoardExportResult, len(boards))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for _, board := range boards {
			select {
			case <-ctx.Done():
				return
			case jobs <- boardExportJob{board: board}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(boards), res.OwnerName, res.JobCount))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(boards), res.OwnerName, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteBulkExportManifest(*result, opts.Format, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("export complete", "dir", opts.OutputDir, "boards", result.TotalBoards, "failed", result.FailedExports)
	return result, nil
}

// collectBoards groups the matching jobs by owner, keeping the store's newest-first order.
// Owners whose profile no longer exists are exported under their id alone.
func (e *Engine) collectBoards(filter models.JobFilter) ([]*formatter.JobBoard, error) {
	jobs, err := e.store.Jobs.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}

	var boards []*formatter.JobBoard
	byOwner := make(map[string]*formatter.JobBoard)
	for _, job := range jobs {
		board, ok := byOwner[job.UserID]
		if !ok {
			board = &formatter.JobBoard{Owner: models.User{ID: job.UserID}}
			byOwner[job.UserID] = board
			boards = append(boards, board)
		}
		board.Jobs = append(board.Jobs, job)
	}

	for _, board := range boards {
		owner, err := e.store.Users.Get(board.Owner.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load owner %s: %w", board.Owner.ID, err)
		}
		if owner != nil {
			board.Owner = *owner
		}
	}
	return boards, nil
}

// exportWorker is a worker goroutine that exports boards from the jobs channel.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan boardExportJob,
	results chan<- formatter.BoardExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportBoard(job.board, opts)
	}
}

// exportBoard exports a single board to the requested format.
func (e *Engine) exportBoard(board *formatter.JobBoard, opts BulkExportOpts) formatter.BoardExportResult {
	result := formatter.BoardExportResult{
		OwnerID:   board.Owner.ID,
		OwnerName: board.Title(),
		JobCount:  len(board.Jobs),
		Files:     []string{},
	}

	base := filepath.Join(opts.OutputDir, board.Owner.ID)
	switch opts.Format {
	case "csv":
		csvRes, err := formatter.WriteCSVExport(board, base)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.JobsFile, csvRes.MetadataFile}
	case "markdown":
		mdRes, err := formatter.WriteMarkdownExport(board, base)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
	case "txt":
		path, err := formatter.WriteTextExport(board, base+"_jobs.txt")
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{path}
	default:
		path, err := formatter.WriteJSONExport(board, base+".json")
		if err != nil {
			result.Error = fmt.Errorf("JSON export failed: %w", err)
			return result
		}
		result.Files = []string{path}
	}

	result.Success = true
	return result
}

func validFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func countJobs(boards []*formatter.JobBoard) int {
	n := 0
	for _, b := range boards {
		n += len(b.Jobs)
	}
	return n
}
