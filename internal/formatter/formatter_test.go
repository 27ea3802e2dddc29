package formatter

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/campusconnect/internal/models"
	th "github.com/desertthunder/campusconnect/internal/testing"
)

func testBoard() *JobBoard {
	finder := th.NewFinder()
	return &JobBoard{
		Owner: *finder,
		Jobs: []*models.Job{
			th.NewJobPosting("job1", finder.ID, "Frontend Intern", 0),
			th.NewJobPosting("job2", finder.ID, "Backend Developer", time.Hour),
		},
	}
}

// withTransport points the image client at rt for the duration of the test.
func withTransport(t *testing.T, rt http.RoundTripper) {
	t.Helper()
	original := httpClient
	httpClient = &http.Client{Transport: rt}
	t.Cleanup(func() { httpClient = original })
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testBoard())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Type,Status,Experience,Location,Budget,Tags,Required Skills,Views,Applications,Created") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "job1,Frontend Intern,startup-collaborations,active,intermediate,Remote,$500/month") {
			t.Errorf("CSV missing job1 row, got: %s", output)
		}
		if !strings.Contains(output, "Startups; Remote") {
			t.Errorf("CSV should join tags with semicolons")
		}
		if !strings.Contains(output, ",12,3,2025-02-03T10:00:00Z") {
			t.Errorf("CSV missing counters or timestamp, got: %s", output)
		}

		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Errorf("Expected 3 lines (header + 2 jobs), got %d", len(lines))
		}
	})

	t.Run("ExportToCSV_Empty", func(t *testing.T) {
		data, err := ExportToCSV(&JobBoard{Owner: *th.NewFinder()})
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 1 {
			t.Errorf("Expected only header line, got %d lines", len(lines))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testBoard(), "profile.jpg")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		for _, want := range []string{
			"# Jobs posted by Sarah Chen",
			"![Profile](profile.jpg)",
			"**About**: Startup founder.",
			"**Jobs**: 2",
			"## Frontend Intern",
			"- **Skills**: React, JavaScript",
			"- **Views**: 12, **Applications**: 3",
			"Build backend developer with us.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}
	})

	t.Run("ExportToMarkdown_NoImage", func(t *testing.T) {
		data, err := ExportToMarkdown(testBoard(), "")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		if strings.Contains(string(data), "![Profile]") {
			t.Error("Markdown should not reference an image when none is given")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testBoard())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Finder: Sarah Chen") {
			t.Errorf("Text missing finder name")
		}
		if !strings.Contains(output, "Email: recruiter@startup.com") {
			t.Errorf("Text missing email")
		}
		if !strings.Contains(output, "1. Frontend Intern [startup-collaborations, active]") {
			t.Errorf("Text missing formatted first job, got: %s", output)
		}
	})

	t.Run("Title", func(t *testing.T) {
		tests := []struct {
			name  string
			board JobBoard
			want  string
		}{
			{name: "name", board: JobBoard{Owner: *th.NewFinder()}, want: "Sarah Chen"},
			{name: "email fallback", board: func() JobBoard { b := JobBoard{Owner: *th.NewFinder()}; b.Owner.Name = ""; return b }(), want: "recruiter@startup.com"},
			{name: "id fallback", board: func() JobBoard { b := JobBoard{}; b.Owner.ID = "u1"; return b }(), want: "u1"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := tt.board.Title(); got != tt.want {
					t.Errorf("expected %q, got %q", tt.want, got)
				}
			})
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("EmptyURL", func(t *testing.T) {
		_, err := DownloadImage("")
		if err == nil {
			t.Error("DownloadImage with empty URL should return error")
		}
	})

	t.Run("Success", func(t *testing.T) {
		withTransport(t, th.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString("image-bytes")),
		}, nil))

		data, err := DownloadImage("https://example.com/p.png")
		if err != nil {
			t.Fatalf("DownloadImage failed: %v", err)
		}
		if string(data) != "image-bytes" {
			t.Errorf("unexpected image data %q", data)
		}
	})

	t.Run("BadStatus", func(t *testing.T) {
		withTransport(t, th.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString("")),
		}, nil))

		if _, err := DownloadImage("https://example.com/p.png"); err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Errorf("expected status error, got %v", err)
		}
	})

	t.Run("TransportError", func(t *testing.T) {
		withTransport(t, th.NewMockRoundTripper(nil, errors.New("offline")))

		if _, err := DownloadImage("https://example.com/p.png"); err == nil {
			t.Error("expected transport error")
		}
	})

	t.Run("ReadError", func(t *testing.T) {
		withTransport(t, th.NewMockRoundTripper(&http.Response{
			StatusCode: http.StatusOK,
			Body:       &th.FCloser{},
		}, nil))

		if _, err := DownloadImage("https://example.com/p.png"); err == nil || !strings.Contains(err.Error(), "failed to read image data") {
			t.Errorf("expected read error, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		t.Run("WithDefaultPath", func(t *testing.T) {
			tempDir := t.TempDir()
			originalDir := th.MustGetwd(t)
			th.MustChdir(t, tempDir)
			defer th.MustChdir(t, originalDir)

			result, err := WriteCSVExport(testBoard(), "")
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.JobsFile != "finder-1_jobs.csv" {
				t.Errorf("Expected jobs file 'finder-1_jobs.csv', got '%s'", result.JobsFile)
			}
			if result.MetadataFile != "finder-1_owner.json" {
				t.Errorf("Expected owner file 'finder-1_owner.json', got '%s'", result.MetadataFile)
			}

			th.AssertFileExists(t, result.JobsFile)
			th.AssertFileExists(t, result.MetadataFile)

			owner := th.MustReadFile(t, result.MetadataFile)
			if !strings.Contains(owner, `"email": "recruiter@startup.com"`) {
				t.Errorf("Owner JSON missing email, got: %s", owner)
			}
		})

		t.Run("WithCustomPath", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "custom")

			result, err := WriteCSVExport(testBoard(), base)
			if err != nil {
				t.Fatalf("WriteCSVExport failed: %v", err)
			}

			if result.JobsFile != base+"_jobs.csv" {
				t.Errorf("Expected %s_jobs.csv, got %s", base, result.JobsFile)
			}
			th.AssertFileExists(t, result.JobsFile)
		})

		t.Run("MissingDirectory", func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "missing", "custom")

			if _, err := WriteCSVExport(testBoard(), base); err == nil {
				t.Error("expected error writing into a missing directory")
			}
		})
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		t.Run("WithoutPicture", func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "board")

			result, err := WriteMarkdownExport(testBoard(), dir)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			th.AssertDirExists(t, dir)
			th.AssertFileExists(t, filepath.Join(dir, "README.md"))
			if result.ProfilePicture != "" {
				t.Errorf("Expected no profile picture, got %s", result.ProfilePicture)
			}
			if len(result.Files) != 1 {
				t.Errorf("Expected 1 file, got %d", len(result.Files))
			}
		})

		t.Run("WithPicture", func(t *testing.T) {
			withTransport(t, th.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString("jpeg")),
			}, nil))

			board := testBoard()
			board.Owner.ProfilePicture = "https://example.com/sarah.jpg"
			dir := filepath.Join(t.TempDir(), "board")

			result, err := WriteMarkdownExport(board, dir)
			if err != nil {
				t.Fatalf("WriteMarkdownExport failed: %v", err)
			}

			th.AssertFileExists(t, filepath.Join(dir, "profile.jpg"))
			if len(result.Files) != 2 {
				t.Errorf("Expected 2 files, got %d", len(result.Files))
			}

			readme := th.MustReadFile(t, filepath.Join(dir, "README.md"))
			if !strings.Contains(readme, "![Profile](profile.jpg)") {
				t.Error("README should reference the downloaded picture")
			}
		})

		t.Run("PictureDownloadFails", func(t *testing.T) {
			withTransport(t, th.NewMockRoundTripper(nil, errors.New("offline")))

			board := testBoard()
			board.Owner.ProfilePicture = "https://example.com/sarah.jpg"
			dir := filepath.Join(t.TempDir(), "board")

			result, err := WriteMarkdownExport(board, dir)
			if err != nil {
				t.Fatalf("a failed picture download should not fail the export: %v", err)
			}
			if result.ProfilePicture != "" {
				t.Error("Expected no profile picture after failed download")
			}
		})
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		path, err := WriteTextExport(testBoard(), "")
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}

		if path != "finder-1_jobs.txt" {
			t.Errorf("Expected 'finder-1_jobs.txt', got '%s'", path)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("WriteJSONExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "board.json")

		got, err := WriteJSONExport(testBoard(), path)
		if err != nil {
			t.Fatalf("WriteJSONExport failed: %v", err)
		}

		if got != path {
			t.Errorf("Expected %s, got %s", path, got)
		}

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, `"title": "Frontend Intern"`) {
			t.Errorf("JSON missing job title, got: %s", content)
		}
	})

	t.Run("WriteBulkExportManifest", func(t *testing.T) {
		t.Run("SuccessfulExport", func(t *testing.T) {
			manifestPath := filepath.Join(t.TempDir(), "manifest.json")

			bulkResult := BulkExportResult{
				TotalBoards:       2,
				SuccessfulExports: 2,
				Results: []BoardExportResult{
					{OwnerID: "finder-1", OwnerName: "Sarah Chen", JobCount: 5, Success: true, Files: []string{"finder-1_jobs.csv", "finder-1_owner.json"}},
					{OwnerID: "finder-2", OwnerName: "Dr. Michael Brown", JobCount: 1, Success: true, Files: []string{"finder-2/README.md"}},
				},
			}

			if err := WriteBulkExportManifest(bulkResult, "csv", manifestPath); err != nil {
				t.Fatalf("WriteBulkExportManifest failed: %v", err)
			}

			content := th.MustReadFile(t, manifestPath)
			for _, want := range []string{
				`"format": "csv"`,
				`"total_boards": 2`,
				`"successful_exports": 2`,
				`"owner_id": "finder-1"`,
				`"owner_name": "Sarah Chen"`,
				`"jobs": 5`,
				`"status": "success"`,
			} {
				if !strings.Contains(content, want) {
					t.Errorf("Manifest missing %s", want)
				}
			}
		})

		t.Run("WithFailedExports", func(t *testing.T) {
			manifestPath := filepath.Join(t.TempDir(), "manifest.json")

			bulkResult := BulkExportResult{
				TotalBoards:       2,
				SuccessfulExports: 1,
				FailedExports:     1,
				Results: []BoardExportResult{
					{OwnerID: "finder-1", Success: true, Files: []string{"finder-1.json"}},
					{OwnerID: "finder-2", Success: false, Error: errors.New("disk full")},
				},
			}

			if err := WriteBulkExportManifest(bulkResult, "markdown", manifestPath); err != nil {
				t.Fatalf("WriteBulkExportManifest failed: %v", err)
			}

			content := th.MustReadFile(t, manifestPath)
			if !strings.Contains(content, `"failed_exports": 1`) {
				t.Errorf("Manifest missing failed_exports count")
			}
			if !strings.Contains(content, `"status": "failed"`) {
				t.Errorf("Manifest missing failed status")
			}
			if !strings.Contains(content, `"error": "disk full"`) {
				t.Errorf("Manifest missing error message")
			}
		})
	})
}
