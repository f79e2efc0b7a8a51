package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"webpify/internal/config"
)

// Requirement defines an external dependency webpify relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries a run can invoke, using any
// configured overrides. Only cwebp is mandatory: metadata propagation
// degrades without exiftool, and sips is needed solely for HEIC sources.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "cwebp",
			Command:     cfg.CwebpBinary(),
			Description: "WebP encoder (performs every conversion)",
		},
		{
			Name:        "exiftool",
			Command:     cfg.ExiftoolBinary(),
			Description: "metadata tool (tag propagation is skipped without it)",
			Optional:    true,
		},
		{
			Name:        "sips",
			Command:     cfg.SipsBinary(),
			Description: "HEIC decoder (only HEIC sources need it)",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// InstallHints returns per-platform installation pointers for exiftool,
// shown once when the capability probe fails.
func InstallHints() []string {
	return []string{
		"macOS: brew install exiftool",
		"Linux: sudo apt-get install exiftool",
		"Windows: download from https://exiftool.org/",
	}
}
