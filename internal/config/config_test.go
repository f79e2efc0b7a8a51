package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultQuality(t *testing.T) {
	cfg := Default()
	if cfg.Conversion.Quality != 80 {
		t.Fatalf("expected default quality 80, got %d", cfg.Conversion.Quality)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file to report exists=false")
	}
	if cfg.Conversion.Quality != 80 {
		t.Fatalf("expected default quality, got %d", cfg.Conversion.Quality)
	}
	if filepath.Base(cfg.Paths.OutputDir) != "webp_output" {
		t.Fatalf("expected default output dir name, got %s", cfg.Paths.OutputDir)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photos")
	if err := os.MkdirAll(input, 0o755); err != nil {
		t.Fatalf("mkdir input: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
input_dir = "` + input + `"
output_dir = "converted"

[conversion]
quality = 65

[tools]
cwebp = "/opt/webp/bin/cwebp"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be used, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Conversion.Quality != 65 {
		t.Fatalf("expected quality 65, got %d", cfg.Conversion.Quality)
	}
	if cfg.Paths.OutputDir != filepath.Join(input, "converted") {
		t.Fatalf("expected relative output dir under input dir, got %s", cfg.Paths.OutputDir)
	}
	if cfg.CwebpBinary() != "/opt/webp/bin/cwebp" {
		t.Fatalf("unexpected cwebp binary: %s", cfg.CwebpBinary())
	}
	if cfg.ExiftoolBinary() != "exiftool" {
		t.Fatalf("expected exiftool fallback, got %s", cfg.ExiftoolBinary())
	}
}

func TestValidateRejectsBadQuality(t *testing.T) {
	cfg := Default()
	cfg.Conversion.Quality = 140
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for quality 140")
	}
	if !strings.Contains(err.Error(), "quality") {
		t.Fatalf("expected quality error, got %v", err)
	}
}

func TestValidateRejectsOutputEqualInput(t *testing.T) {
	cfg := Default()
	cfg.Paths.InputDir = t.TempDir()
	cfg.Paths.OutputDir = cfg.Paths.InputDir
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error when output_dir equals input_dir")
	}
}

func TestEnsureDirectoriesIdempotent(t *testing.T) {
	cfg := Default()
	base := t.TempDir()
	cfg.Paths.InputDir = base
	cfg.Paths.OutputDir = filepath.Join(base, "webp_output")
	cfg.History.Enabled = false

	for i := 0; i < 2; i++ {
		if err := cfg.EnsureDirectories(); err != nil {
			t.Fatalf("ensure directories (pass %d): %v", i+1, err)
		}
	}
	info, err := os.Stat(cfg.Paths.OutputDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected output directory to exist: %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[conversion]") {
		t.Fatal("expected sample config to document the conversion section")
	}
}
