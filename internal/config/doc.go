// Package config loads, normalizes, and validates caption service settings.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the CAPTIONS_API_TOKEN environment fallback. The
// Config type centralizes every knob the loader, cache, exporters, HTTP server
// and CLI need.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
