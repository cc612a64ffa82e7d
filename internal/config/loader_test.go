package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "custom.yaml")
	content := []byte(`
solver:
  perfection_threshold: 4
  progress_every: 10
render:
  format: svg
journal:
  path: /tmp/test-journal.db
`)
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Solver.PerfectionThreshold != 4 {
		t.Errorf("PerfectionThreshold = %d, want 4", cfg.Solver.PerfectionThreshold)
	}
	if cfg.Solver.ProgressEvery != 10 {
		t.Errorf("ProgressEvery = %d, want 10", cfg.Solver.ProgressEvery)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("Format = %s, want svg", cfg.Render.Format)
	}
	if cfg.Journal.Path != "/tmp/test-journal.db" {
		t.Errorf("Journal path = %s", cfg.Journal.Path)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of missing explicit path did not error")
	}
}

func TestLoadBadYAMLFails(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte("solver: ["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("Load() of malformed YAML did not error")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	// the embedded YAML and the hardcoded fallback should agree, so that
	// behavior doesn't depend on which one is reached
	cfg := Default()
	if cfg.Solver.PerfectionThreshold != 1 {
		t.Errorf("default PerfectionThreshold = %d, want 1", cfg.Solver.PerfectionThreshold)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("default Format = %s, want png", cfg.Render.Format)
	}
	if cfg.Journal.Path == "" {
		t.Error("default journal path is empty")
	}
}
