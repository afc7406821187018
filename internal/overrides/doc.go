// Package overrides manages the manual instructor override catalog.
//
// The catalog maps normalized schedule names to rating-site teacher ids and
// is consulted before any fuzzy search. It reloads lazily when the backing
// file's modification time changes, so external edits are picked up without
// restarting.
package overrides
