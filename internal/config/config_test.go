package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.YAMLIndent != 2 {
		t.Errorf("expected indent 2, got %d", cfg.YAMLIndent)
	}
	if cfg.YAMLWidth != 120 {
		t.Errorf("expected width 120, got %d", cfg.YAMLWidth)
	}
	if !cfg.IncludeCameraMovement || !cfg.IncludeShotTimecode {
		t.Error("expected optional sections on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "project_title: My Film\nyaml_indent: 4\ninclude_shot_timecode: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectTitle != "My Film" {
		t.Errorf("expected project title, got %q", cfg.ProjectTitle)
	}
	if cfg.YAMLIndent != 4 {
		t.Errorf("expected indent 4, got %d", cfg.YAMLIndent)
	}
	if cfg.IncludeShotTimecode {
		t.Error("expected shot timecode disabled")
	}
	// Keys the file did not mention keep their defaults.
	if cfg.YAMLWidth != 120 {
		t.Errorf("expected default width 120, got %d", cfg.YAMLWidth)
	}
	if !cfg.IncludeCameraMovement {
		t.Error("expected camera movement still enabled")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateRanges(t *testing.T) {
	cfg := Default()
	cfg.YAMLIndent = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for indent 0")
	}
	cfg = Default()
	cfg.YAMLIndent = 9
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for indent 9")
	}
	cfg = Default()
	cfg.YAMLWidth = 79
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for width 79")
	}
	cfg = Default()
	cfg.YAMLWidth = 201
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for width 201")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.ProjectTitle = "Saved Title"
	cfg.YAMLIndent = 3

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	for _, key := range []string{
		"SHOTFOLD_PORT", "SHOTFOLD_API_KEY", "SHOTFOLD_WORKER_COUNT",
		"SHOTFOLD_MAX_QUEUE_SIZE", "SHOTFOLD_MAX_UPLOAD_BYTES", "SHOTFOLD_JOB_TTL",
	} {
		t.Setenv(key, "")
	}

	srv := LoadServer()
	if srv.Port != "8085" {
		t.Errorf("expected default port 8085, got %s", srv.Port)
	}
	if srv.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", srv.WorkerCount)
	}
	if srv.MaxQueueSize != 100 {
		t.Errorf("expected queue size 100, got %d", srv.MaxQueueSize)
	}
	if srv.MaxUploadBytes != 10<<20 {
		t.Errorf("expected 10MB upload limit, got %d", srv.MaxUploadBytes)
	}
	if srv.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %s", srv.JobTTL)
	}
	if err := srv.Validate(); err == nil {
		t.Error("expected validation failure without api key")
	}
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("SHOTFOLD_PORT", "9000")
	t.Setenv("SHOTFOLD_API_KEY", "secret")
	t.Setenv("SHOTFOLD_WORKER_COUNT", "8")
	t.Setenv("SHOTFOLD_JOB_TTL", "30m")

	srv := LoadServer()
	if srv.Port != "9000" {
		t.Errorf("expected port 9000, got %s", srv.Port)
	}
	if srv.WorkerCount != 8 {
		t.Errorf("expected 8 workers, got %d", srv.WorkerCount)
	}
	if srv.JobTTL != 30*time.Minute {
		t.Errorf("expected 30m job TTL, got %s", srv.JobTTL)
	}
	if err := srv.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadServerRejectsNonPositive(t *testing.T) {
	t.Setenv("SHOTFOLD_WORKER_COUNT", "-1")
	t.Setenv("SHOTFOLD_MAX_QUEUE_SIZE", "0")

	srv := LoadServer()
	if srv.WorkerCount != 4 {
		t.Errorf("expected fallback worker count, got %d", srv.WorkerCount)
	}
	if srv.MaxQueueSize != 100 {
		t.Errorf("expected fallback queue size, got %d", srv.MaxQueueSize)
	}
}
