package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store invariant errors
	ErrDuplicateEmail       = fmt.Errorf("a user with this email already exists")
	ErrDuplicateApplication = fmt.Errorf("already applied to this job")
	ErrUnknownReference     = fmt.Errorf("referenced record does not exist")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
