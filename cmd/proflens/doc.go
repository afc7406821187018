// Package main hosts the proflens CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into rating
// resolutions, raw searches, subject browsing, and maintenance of the local
// cache and override catalog. It centralizes configuration resolution and
// component wiring so subcommands can focus on presentation.
//
// Keep this package lean: resolution and matching behavior belongs in the
// internal packages; commands only parse flags and render results.
package main
