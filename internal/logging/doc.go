// Package logging assembles the structured slog loggers used across webpify.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes attr helpers plus standardized field keys so every component
// reports failing commands, exit codes, and captured output with the same
// shape. A no-op logger is provided for tests.
package logging
