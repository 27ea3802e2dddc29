// Package tasks runs the multi-step operations the CLI exposes on top of the store.
//
// # Operations
//
// [Engine] provides:
//
//  1. [Engine.Seed] : Load the demo users and jobs into an empty store
//  2. [Engine.Summarize] : Finder dashboard totals across the finder's jobs
//  3. [Engine.Recommendations] : Seeker dashboard ranking over active jobs
//  4. [Engine.ExportJobs] : Write every finder's jobs to disk with a worker pool
//
// # Progress Reporting
//
// Long-running operations accept an optional channel of [ProgressUpdate].
// Updates use select with default to prevent blocking, so a slow or absent reader never stalls work.
package tasks
