package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func discoverNames(t *testing.T, root string) map[string]Candidate {
	t.Helper()
	candidates, err := Discover(root)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	byName := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byName[c.Name] = c
	}
	return byName
}

func TestExtensionMatchingIsExact(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpeg"))
	touch(t, filepath.Join(root, "b.JPEG"))
	touch(t, filepath.Join(root, "c.Jpeg")) // mixed case is not in the list
	touch(t, filepath.Join(root, "d.png"))
	touch(t, filepath.Join(root, "e.heic"))
	touch(t, filepath.Join(root, "f.HEIC"))
	touch(t, filepath.Join(root, "g.webp"))
	touch(t, filepath.Join(root, "notes.txt"))

	byName := discoverNames(t, root)

	for _, want := range []string{"a.jpeg", "b.JPEG", "d.png", "e.heic", "f.HEIC"} {
		if _, ok := byName[want]; !ok {
			t.Fatalf("expected %s to be discovered, got %v", want, byName)
		}
	}
	for _, reject := range []string{"c.Jpeg", "g.webp", "notes.txt"} {
		if _, ok := byName[reject]; ok {
			t.Fatalf("expected %s to be skipped", reject)
		}
	}
}

func TestDiscoverDoesNotRecurse(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	touch(t, filepath.Join(sub, "deep.jpg"))
	touch(t, filepath.Join(root, "top.jpg"))

	byName := discoverNames(t, root)
	if len(byName) != 1 {
		t.Fatalf("expected only the top-level file, got %v", byName)
	}
	if _, ok := byName["top.jpg"]; !ok {
		t.Fatal("expected top.jpg to be discovered")
	}
}

func TestCandidateFields(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "holiday.HEIC"))

	byName := discoverNames(t, root)
	cand, ok := byName["holiday.HEIC"]
	if !ok {
		t.Fatal("expected candidate")
	}
	if cand.Stem != "holiday" {
		t.Fatalf("expected stem holiday, got %s", cand.Stem)
	}
	if cand.Ext != ".HEIC" {
		t.Fatalf("expected matched extension .HEIC, got %s", cand.Ext)
	}
	if !cand.IsHEIC() {
		t.Fatal("expected HEIC routing for .HEIC")
	}
}

func TestLowercaseHeicRoutesTwoStep(t *testing.T) {
	c := Candidate{Ext: ".heic"}
	if !c.IsHEIC() {
		t.Fatal("expected .heic to route through the two-step path")
	}
	if (Candidate{Ext: ".jpg"}).IsHEIC() {
		t.Fatal(".jpg must not route through the HEIC path")
	}
}

func TestDotfilesAndBareExtensionsSkipped(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".hidden.jpg"))
	touch(t, filepath.Join(root, ".jpg"))

	byName := discoverNames(t, root)
	if len(byName) != 0 {
		t.Fatalf("expected no candidates, got %v", byName)
	}
}
