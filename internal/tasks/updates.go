package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	SeedUsers Phase = iota
	SeedJobs
	CollectJobs
	ExportJobs
)

func (p Phase) String() string {
	switch p {
	case SeedUsers:
		return "seed_users"
	case SeedJobs:
		return "seed_jobs"
	case CollectJobs:
		return "collect_jobs"
	case ExportJobs:
		return "export_jobs"
	default:
		return ""
	}
}

func seedUserUpdate(step, total int, email string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedUsers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Creating user %s...", step, total, email),
	}
}

func seedSkippedUpdate(users int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedUsers,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Store already has %d users, skipping demo data", users),
	}
}

func seedJobUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SeedJobs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Posting %s...", step, total, title),
	}
}

func collectJobsUpdate(jobs, owners int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CollectJobs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d jobs from %d finders", jobs, owners),
	}
}

func exportCompletedUpdate(step, total int, owner string, jobs int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportJobs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d jobs)", step, total, owner, jobs),
	}
}

func exportFailedUpdate(step, total int, owner string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportJobs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, owner, err),
	}
}
