// Package services defines shared utilities consumed by the external tool
// integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across the pipeline.
//   - The Executor abstraction and CommandResult/CommandError types that make
//     command execution testable and keep the failing command line, exit
//     code, and captured streams attached to every failure.
//
// Use these helpers when wiring a new tool client so error handling and
// observability stay uniform.
package services
