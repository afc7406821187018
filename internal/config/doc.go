// Package config loads, normalizes, and validates proflens configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PROFLENS_SCHOOL_ID. The Config type centralizes every knob the CLI and
// resolver need: storage locations, the target school and its alternate
// encodings, rating API connection settings, cache TTLs, and score weights.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
