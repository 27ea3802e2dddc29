// Package models defines domain entities, enums and typed query configuration for the campus job board.
//
// The package contains three categories of types:
//
// 1. Persistent Entities: store-backed records with a JSON record layout that doubles as the serialization contract
//   - [User] : Finder or seeker profile (the credential secret is never part of this type)
//   - [Job] : Opportunity posted by a finder, with view and application counters
//   - [Application] : A seeker's application to a job, unique per (job, applicant)
//   - [Message] : Direct message between two users with a one-way read flag
//
// 2. Enums: [ExperienceLevel], [JobType], [JobStatus], [ApplicationStatus]
//
// 3. Query and mutation configuration: [UserFilter], [JobFilter], [ApplicationFilter], [MessageFilter],
// [UserPatch], [JobPatch], [JobInput], [ApplicationInput]. Zero values impose no constraint / change nothing.
//
// All persistent entities implement the [Model] interface.
package models
