// Package resolver orchestrates instructor rating resolution: cache check,
// manual override lookup, throttled search, candidate matching, and cache
// write-back. It is the entry point the CLI and any embedding service call.
package resolver
