// package formatter renders job boards, recommendations and conversations to files and text
// (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/campusconnect/internal/models"
	"github.com/desertthunder/campusconnect/internal/shared"
)

// httpClient fetches profile pictures for Markdown exports.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// JobBoard is one finder's postings, the unit every exporter works on.
type JobBoard struct {
	Owner models.User   `json:"owner"`
	Jobs  []*models.Job `json:"jobs"`
}

// Title names the board after its owner.
func (b *JobBoard) Title() string {
	if b.Owner.Name != "" {
		return b.Owner.Name
	}
	if b.Owner.Email != "" {
		return b.Owner.Email
	}
	return b.Owner.ID
}

// ExportToCSV converts a JobBoard to CSV format with one row per job
func ExportToCSV(board *JobBoard) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Type", "Status", "Experience", "Location", "Budget", "Tags", "Required Skills", "Views", "Applications", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, job := range board.Jobs {
		record := []string{
			job.ID,
			job.Title,
			string(job.Type),
			string(job.Status),
			string(job.ExperienceLevel),
			job.Location,
			job.Budget,
			strings.Join(job.Tags, "; "),
			strings.Join(job.RequiredSkills, "; "),
			strconv.Itoa(job.Views),
			strconv.Itoa(job.Applications),
			job.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a JobBoard to Markdown format with an optional profile picture
func ExportToMarkdown(board *JobBoard, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Jobs posted by %s\n\n", board.Title()))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Profile](%s)\n\n", imageFilename))
	}

	if board.Owner.Bio != "" {
		buf.WriteString(fmt.Sprintf("**About**: %s\n\n", board.Owner.Bio))
	}

	buf.WriteString(fmt.Sprintf("**Jobs**: %d\n\n", len(board.Jobs)))

	for _, job := range board.Jobs {
		buf.WriteString(fmt.Sprintf("## %s\n\n", job.Title))
		buf.WriteString(fmt.Sprintf("- **Type**: %s\n", job.Type))
		buf.WriteString(fmt.Sprintf("- **Status**: %s\n", job.Status))
		if job.ExperienceLevel != "" {
			buf.WriteString(fmt.Sprintf("- **Experience**: %s\n", job.ExperienceLevel))
		}
		if job.Location != "" {
			buf.WriteString(fmt.Sprintf("- **Location**: %s\n", job.Location))
		}
		if job.Budget != "" {
			buf.WriteString(fmt.Sprintf("- **Budget**: %s\n", job.Budget))
		}
		if len(job.RequiredSkills) > 0 {
			buf.WriteString(fmt.Sprintf("- **Skills**: %s\n", strings.Join(job.RequiredSkills, ", ")))
		}
		if len(job.Tags) > 0 {
			buf.WriteString(fmt.Sprintf("- **Tags**: %s\n", strings.Join(job.Tags, ", ")))
		}
		buf.WriteString(fmt.Sprintf("- **Views**: %d, **Applications**: %d\n", job.Views, job.Applications))
		if job.Description != "" {
			buf.WriteString(fmt.Sprintf("\n%s\n", job.Description))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a JobBoard to plain text format
func ExportToText(board *JobBoard) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Finder: %s\n", board.Title()))
	if board.Owner.Email != "" {
		buf.WriteString(fmt.Sprintf("Email: %s\n", board.Owner.Email))
	}
	buf.WriteString(fmt.Sprintf("Jobs: %d\n\n", len(board.Jobs)))

	for i, job := range board.Jobs {
		buf.WriteString(fmt.Sprintf("%d. %s [%s, %s]\n", i+1, job.Title, job.Type, job.Status))
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ToMetadataJSON generates a JSON representation of the board owner (without jobs)
func ToMetadataJSON(owner models.User) ([]byte, error) {
	return shared.MarshalJSON(owner, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	JobsFile     string
	MetadataFile string
}

// WriteCSVExport exports a board to CSV format with an accompanying owner JSON file.
//
// Defaults to the owner ID as the base filename & creates {base}_jobs.csv and {base}_owner.json
func WriteCSVExport(board *JobBoard, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = board.Owner.ID
	}

	csvData, err := ExportToCSV(board)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	jobsFile := baseFilepath + "_jobs.csv"
	if err := os.WriteFile(jobsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(board.Owner)
	if err != nil {
		return nil, fmt.Errorf("failed to generate owner JSON: %w", err)
	}

	metadataFile := baseFilepath + "_owner.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write owner file: %w", err)
	}

	return &CSVExportResult{
		JobsFile:     jobsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory      string
	Files          []string
	ProfilePicture string
}

// WriteMarkdownExport exports a board to Markdown format in a dedicated directory.
//
// Directory name defaults to the owner ID. When the owner has a profile picture URL the image is
// downloaded next to the README; a failed download only drops the image.
func WriteMarkdownExport(board *JobBoard, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = board.Owner.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var imageFilename string
	if board.Owner.ProfilePicture != "" {
		imageData, err := DownloadImage(board.Owner.ProfilePicture)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download profile picture: %v\n", err)
		} else {
			imageFilename = "profile.jpg"
			imagePath := filepath.Join(outputDir, imageFilename)
			if err := os.WriteFile(imagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save profile picture: %v\n", err)
				imageFilename = ""
			} else {
				result.ProfilePicture = imagePath
				result.Files = append(result.Files, imagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(board, imageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport exports a board to plain text format.
//
// Defaults to {owner.ID}_jobs.txt as the filename.
func WriteTextExport(board *JobBoard, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s_jobs.txt", board.Owner.ID)
	}

	textData, err := ExportToText(board)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports a board to indented JSON.
//
// Defaults to {owner.ID}.json as the filename.
func WriteJSONExport(board *JobBoard, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s.json", board.Owner.ID)
	}

	data, err := shared.MarshalJSON(board, true)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}
