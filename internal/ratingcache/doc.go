// Package ratingcache provides the TTL cache for resolved instructor ratings.
//
// Entries are keyed by (school, surname, given name) and stored in a local
// SQLite database so cached resolutions survive process restarts. Expiry is
// lazy: stale rows are purged on the read that observes them. Successful
// resolutions default to a week-long lifetime while not-found markers expire
// after an hour, so transient search failures are retried much sooner than
// confirmed matches.
package ratingcache
