// Package logging builds the slog loggers used across proflens.
//
// It offers two output formats: a compact console format for interactive CLI
// use and JSON for log files or machine consumption. Components attach a
// standardized "component" attribute via NewComponentLogger so console lines
// read as "component: message". Typed attribute helpers keep field names
// consistent across packages.
package logging
