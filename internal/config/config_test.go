package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.SuccessTTL() != 7*24*time.Hour {
		t.Errorf("SuccessTTL = %v, want 168h", cfg.SuccessTTL())
	}
	if cfg.NotFoundTTL() != time.Hour {
		t.Errorf("NotFoundTTL = %v, want 1h", cfg.NotFoundTTL())
	}
	if cfg.MinRequestInterval() != 350*time.Millisecond {
		t.Errorf("MinRequestInterval = %v, want 350ms", cfg.MinRequestInterval())
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[school]
id = "U2Nob29sLTk5"
alternate_ids = ["99"]

[rmp]
min_request_interval_ms = 500

[cache]
success_ttl_hours = 24
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.School.ID != "U2Nob29sLTk5" {
		t.Errorf("School.ID = %q", cfg.School.ID)
	}
	if cfg.MinRequestInterval() != 500*time.Millisecond {
		t.Errorf("MinRequestInterval = %v, want 500ms", cfg.MinRequestInterval())
	}
	if cfg.SuccessTTL() != 24*time.Hour {
		t.Errorf("SuccessTTL = %v, want 24h", cfg.SuccessTTL())
	}
	// Untouched sections keep defaults.
	if cfg.Weights.Overall != 0.7 {
		t.Errorf("Weights.Overall = %v, want 0.7", cfg.Weights.Overall)
	}
}

func TestSchoolIDEnvOverride(t *testing.T) {
	t.Setenv("PROFLENS_SCHOOL_ID", "U2Nob29sLTQy")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if cfg.School.ID != "U2Nob29sLTQy" {
		t.Errorf("School.ID = %q, want env override", cfg.School.ID)
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestValidateRejectsMissingSchool(t *testing.T) {
	cfg := Default()
	cfg.School.ID = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when school id missing")
	}
	if !strings.Contains(err.Error(), "school.id") {
		t.Errorf("error should mention school.id: %v", err)
	}
}

func TestSchoolAllowListDeduplicatesNothingButTrims(t *testing.T) {
	cfg := Default()
	cfg.School.ID = " U2Nob29sLTE1MTM "
	cfg.School.AlternateIDs = []string{" 1513 ", ""}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	allow := cfg.SchoolAllowList()
	if len(allow) != 2 {
		t.Fatalf("allow list = %v, want 2 entries", allow)
	}
	if allow[0] != "U2Nob29sLTE1MTM" || allow[1] != "1513" {
		t.Errorf("allow list = %v", allow)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.CacheDB = filepath.Join(dir, "data", "ratings.db")
	cfg.Paths.OverridesPath = filepath.Join(dir, "conf", "overrides.json")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, want := range []string{filepath.Join(dir, "data"), filepath.Join(dir, "conf"), filepath.Join(dir, "logs")} {
		if info, err := os.Stat(want); err != nil || !info.IsDir() {
			t.Errorf("expected directory %s to exist", want)
		}
	}
}
