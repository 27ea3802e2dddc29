package tasks

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJobs(t *testing.T) {
	seeded := func(t *testing.T) *Engine {
		t.Helper()
		engine, store := setupEngine(t)
		_, err := engine.Seed(context.Background(), nil)
		require.NoError(t, err)

		professor, err := store.Users.Authenticate("professor@university.edu", "demo123")
		require.NoError(t, err)
		_, err = store.Jobs.Create(professor.ID, models.JobInput{Title: "Lab assistant", Type: models.AcademicProject})
		require.NoError(t, err)
		return engine
	}

	formats := []struct {
		format string
		files  int
	}{
		{format: "json", files: 1},
		{format: "csv", files: 2},
		{format: "markdown", files: 1},
		{format: "txt", files: 1},
	}

	for _, tc := range formats {
		t.Run(tc.format, func(t *testing.T) {
			engine := seeded(t)
			dir := filepath.Join(t.TempDir(), "out")
			progress := make(chan ProgressUpdate, 16)

			result, err := engine.ExportJobs(context.Background(), progress, BulkExportOpts{Format: tc.format, OutputDir: dir, NumWorkers: 2})
			require.NoError(t, err)

			assert.Equal(t, 2, result.TotalBoards)
			assert.Equal(t, 2, result.SuccessfulExports)
			assert.Zero(t, result.FailedExports)
			for _, res := range result.Results {
				assert.Len(t, res.Files, tc.files, res.OwnerName)
				for _, f := range res.Files {
					assert.FileExists(t, f)
				}
			}

			require.FileExists(t, result.ManifestPath)
			raw, err := os.ReadFile(result.ManifestPath)
			require.NoError(t, err)

			var manifest struct {
				Format      string `json:"format"`
				TotalBoards int    `json:"total_boards"`
			}
			require.NoError(t, json.Unmarshal(raw, &manifest))
			assert.Equal(t, tc.format, manifest.Format)
			assert.Equal(t, 2, manifest.TotalBoards)

			updates := drain(progress)
			require.NotEmpty(t, updates)
			assert.Equal(t, CollectJobs, updates[0].Phase)
		})
	}

	t.Run("Filter", func(t *testing.T) {
		engine := seeded(t)

		result, err := engine.ExportJobs(context.Background(), nil, BulkExportOpts{
			OutputDir: t.TempDir(),
			Filter:    models.JobFilter{Type: models.AcademicProject},
		})
		require.NoError(t, err)

		jobs := 0
		for _, res := range result.Results {
			jobs += res.JobCount
		}
		assert.Equal(t, 2, jobs)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		engine := seeded(t)

		_, err := engine.ExportJobs(context.Background(), nil, BulkExportOpts{Format: "xlsx", OutputDir: t.TempDir()})
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		engine, _ := setupEngine(t)

		result, err := engine.ExportJobs(context.Background(), nil, BulkExportOpts{OutputDir: t.TempDir()})
		require.NoError(t, err)
		assert.Zero(t, result.TotalBoards)
		assert.FileExists(t, result.ManifestPath)
	})
}
