package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/campusconnect/internal/shared"
)

// BoardExportResult is the outcome of exporting one finder's board.
type BoardExportResult struct {
	OwnerID   string
	OwnerName string
	JobCount  int
	Success   bool
	Files     []string
	Error     error
}

// BulkExportResult summarizes a bulk export across finders.
type BulkExportResult struct {
	TotalBoards       int
	SuccessfulExports int
	FailedExports     int
	Results           []BoardExportResult
	OutputDirectory   string
	ManifestPath      string
}

type manifestEntry struct {
	OwnerID   string   `json:"owner_id"`
	OwnerName string   `json:"owner_name"`
	Jobs      int      `json:"jobs"`
	Status    string   `json:"status"`
	Files     []string `json:"files,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type manifest struct {
	ExportedAt        time.Time       `json:"exported_at"`
	Format            string          `json:"format"`
	TotalBoards       int             `json:"total_boards"`
	SuccessfulExports int             `json:"successful_exports"`
	FailedExports     int             `json:"failed_exports"`
	Boards            []manifestEntry `json:"boards"`
}

// WriteBulkExportManifest writes a JSON manifest describing every board in result.
func WriteBulkExportManifest(result BulkExportResult, format, path string) error {
	m := manifest{
		ExportedAt:        time.Now().UTC(),
		Format:            format,
		TotalBoards:       result.TotalBoards,
		SuccessfulExports: result.SuccessfulExports,
		FailedExports:     result.FailedExports,
		Boards:            make([]manifestEntry, 0, len(result.Results)),
	}

	for _, res := range result.Results {
		entry := manifestEntry{
			OwnerID:   res.OwnerID,
			OwnerName: res.OwnerName,
			Jobs:      res.JobCount,
			Status:    "success",
			Files:     res.Files,
		}
		if !res.Success {
			entry.Status = "failed"
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Boards = append(m.Boards, entry)
	}

	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
