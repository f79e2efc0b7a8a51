package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandResult captures one external tool invocation: the command line, its
// exit code, and both output streams. It is a value even on failure so
// callers can log exactly what ran and what came back.
type CommandResult struct {
	Binary   string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandLine reconstructs the invocation for diagnostics.
func (r CommandResult) CommandLine() string {
	if len(r.Args) == 0 {
		return r.Binary
	}
	return r.Binary + " " + strings.Join(r.Args, " ")
}

// CommandError marks a non-zero exit (or a failure to start) of an external
// tool. It wraps ErrExternalTool and carries the full CommandResult.
type CommandError struct {
	Result CommandResult
	cause  error
}

func (e *CommandError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Result.CommandLine(), e.cause)
	}
	return fmt.Sprintf("%s: exit status %d", e.Result.CommandLine(), e.Result.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return ErrExternalTool
}

// AsCommandError extracts a CommandError from an error chain, if present.
func AsCommandError(err error) (*CommandError, bool) {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr, true
	}
	return nil, false
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args ...string) (CommandResult, error)
}

// NewExecutor returns the production executor backed by os/exec.
func NewExecutor() Executor {
	return commandExecutor{}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args ...string) (CommandResult, error) {
	result := CommandResult{Binary: binary, Args: args}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Stdout = strings.TrimRight(stdout.String(), "\n")
	result.Stderr = strings.TrimRight(stderr.String(), "\n")

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, &CommandError{Result: result}
		}
		// Binary missing, not executable, or context cancelled.
		result.ExitCode = -1
		return result, &CommandError{Result: result, cause: err}
	}
	return result, nil
}
