package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// WriteImage drops a stand-in source image at path. The conversion tools are
// always stubbed or faked in tests, so only the file's existence and name
// matter; the content is an arbitrary byte pattern of the requested size.
func WriteImage(t testing.TB, path string, size int) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, bytes.Repeat([]byte{0x42}, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
