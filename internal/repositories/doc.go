// Package repositories implements SQLite persistence for the job board's entities.
//
// Each repository owns one collection and serializes its mutations, so concurrent callers observe
// every create and counter increment exactly once.
//
// Key Implementations:
//   - [UserRepository] : Profiles and credentials with unique, case-sensitive emails
//   - [JobRepository] : Job postings with monotonic views and applications counters
//   - [ApplicationRepository] : One application per (job, seeker) pair
//   - [MessageRepository] : Direct messages and read state
//   - [Store] : The four repositories wired over one database
//
// Lookups that find nothing return (nil, nil); errors are reserved for invalid input, broken
// invariants and database failures. Jobs are hard-deleted and nothing cascades, so applications
// and messages may reference a job that no longer exists.
//
// Sequence numbers order records created within the same clock tick. The [NextSequence] function
// atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
