package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/campusconnect/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	err := runner.app().Run(context.Background(), os.Args)
	if cerr := runner.Close(); cerr != nil {
		logger.Warn("failed to close store", "error", cerr)
	}

	switch {
	case err == nil:
	case errors.Is(err, shared.ErrDuplicateEmail):
		logger.Fatal("an account with this email already exists, try logging in instead")
	case errors.Is(err, shared.ErrDuplicateApplication):
		logger.Fatal("you have already applied to this job")
	case errors.Is(err, shared.ErrAuthFailed):
		logger.Fatal("invalid email or password")
	default:
		logger.Fatalf("application error: %v", err)
	}
}
