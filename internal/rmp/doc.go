// Package rmp provides the minimal GraphQL client used to look up instructor
// ratings.
//
// It exposes two read-only queries: free-text teacher search optionally
// scoped to a school, and fetch-by-id. Every call is paced by a shared rate
// limiter. The exported calls never return errors; network failures, non-2xx
// statuses, and application-level error payloads are logged and surfaced as
// empty results so the schedule augmentation can degrade gracefully. Options
// allow tests to supply custom HTTP clients without modifying production
// code.
package rmp
