// Package preflight verifies the environment before a conversion run starts.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"webpify/internal/deps"
)

// Result reports one preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckScanDirectory verifies the input directory exists and is readable.
func CheckScanDirectory(path string) Result {
	const name = "scan directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckOutputDirectory verifies the output directory is writable once it
// exists. A missing directory passes because the run creates it.
func CheckOutputDirectory(path string) Result {
	const name = "output directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not writable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDependencies converts binary availability into preflight results.
// Optional tools never fail preflight; they surface as informational rows.
func CheckDependencies(statuses []deps.Status) []Result {
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional}
		switch {
		case status.Available:
			result.Detail = status.Command
		case status.Optional:
			result.Detail = fmt.Sprintf("%s (optional)", status.Detail)
		default:
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// FirstFailure returns the first failed check, if any.
func FirstFailure(results []Result) (Result, bool) {
	for _, result := range results {
		if !result.Passed {
			return result, true
		}
	}
	return Result{}, false
}
