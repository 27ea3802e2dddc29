// package models defines the data model for the campus job board
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the job board.
// Implementations include User, Job, Application and Message.
type Model interface {
	Key() string        // Key returns the unique identifier for this model
	Created() time.Time // Created returns when this model was created
	Validate() error    // Validate checks if the model's data is valid and returns an error if not
}

// cloneStrings returns a copy of s that is never nil, so records serialize as [] rather than null.
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
