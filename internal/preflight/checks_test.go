package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"webpify/internal/deps"
)

func TestCheckScanDirectory(t *testing.T) {
	dir := t.TempDir()
	if result := CheckScanDirectory(dir); !result.Passed {
		t.Fatalf("expected readable temp dir to pass: %#v", result)
	}

	missing := filepath.Join(dir, "absent")
	if result := CheckScanDirectory(missing); result.Passed {
		t.Fatalf("expected missing dir to fail: %#v", result)
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if result := CheckScanDirectory(file); result.Passed {
		t.Fatalf("expected regular file to fail: %#v", result)
	}
}

func TestCheckOutputDirectoryMissingPasses(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "webp_output")
	result := CheckOutputDirectory(missing)
	if !result.Passed {
		t.Fatalf("missing output dir should pass (it gets created): %#v", result)
	}
}

func TestCheckDependenciesOptionalNeverFails(t *testing.T) {
	statuses := []deps.Status{
		{Name: "cwebp", Available: true, Command: "cwebp"},
		{Name: "exiftool", Optional: true, Detail: "binary not found"},
		{Name: "cwebp-missing", Detail: "binary not found"},
	}

	results := CheckDependencies(statuses)
	if !results[0].Passed || !results[1].Passed {
		t.Fatalf("available and optional deps must pass: %#v", results)
	}
	if results[2].Passed {
		t.Fatalf("missing mandatory dep must fail: %#v", results[2])
	}

	failure, found := FirstFailure(results)
	if !found || failure.Name != "cwebp-missing" {
		t.Fatalf("expected first failure to be cwebp-missing, got %#v found=%v", failure, found)
	}
}
