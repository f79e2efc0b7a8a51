// Package config loads, normalizes, and validates webpify configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves relative output directories
// against the scan root. The Config type centralizes every knob the CLI
// needs, from encoder quality to external tool overrides.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
