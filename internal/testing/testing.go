// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/campusconnect/internal/models"
)

// Epoch is the fixed creation time used by fixtures.
var Epoch = time.Date(2025, time.February, 3, 10, 0, 0, 0, time.UTC)

// NewSeeker returns a complete seeker profile that is not stored anywhere.
func NewSeeker() *models.User {
	return &models.User{
		ID:              "seeker-1",
		Email:           "student@university.edu",
		Name:            "Alex Johnson",
		Skills:          []string{"React", "JavaScript", "Python"},
		Interests:       []string{"Web Development", "Startups"},
		Bio:             strings.Repeat("Curious student building things. ", 3),
		ExperienceLevel: models.Intermediate,
		ProfilePicture:  "https://example.com/alex.png",
		CreatedAt:       Epoch,
	}
}

// NewFinder returns a finder profile without a profile picture.
func NewFinder() *models.User {
	return &models.User{
		ID:              "finder-1",
		Email:           "recruiter@startup.com",
		Name:            "Sarah Chen",
		Skills:          []string{"Hiring"},
		Interests:       []string{},
		Bio:             "Startup founder.",
		ExperienceLevel: models.Expert,
		CreatedAt:       Epoch,
	}
}

// NewJobPosting returns an active job owned by ownerID, created age before [Epoch].
func NewJobPosting(id, ownerID, title string, age time.Duration) *models.Job {
	return &models.Job{
		ID:              id,
		UserID:          ownerID,
		Title:           title,
		Description:     "Build " + strings.ToLower(title) + " with us.",
		Type:            models.StartupCollaboration,
		Tags:            []string{"Startups", "Remote"},
		RequiredSkills:  []string{"React", "JavaScript"},
		ExperienceLevel: models.Intermediate,
		Location:        "Remote",
		Budget:          "$500/month",
		Status:          models.JobActive,
		Views:           12,
		Applications:    3,
		CreatedAt:       Epoch.Add(-age),
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
