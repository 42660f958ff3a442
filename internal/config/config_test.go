package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsAreValidOnceBackingSet(t *testing.T) {
	cfg := Default()
	cfg.Backing.BaseURL = "https://api.example.com"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Cache.VenueFreshness != 300 {
		t.Fatalf("venue freshness default = %d, want 300", cfg.Cache.VenueFreshness)
	}
	if cfg.Cache.RatingFreshness != 0 {
		t.Fatalf("rating freshness default = %d, want 0", cfg.Cache.RatingFreshness)
	}
	if got := cfg.Identity.BackoffMillis; len(got) != 3 || got[1] != 500 {
		t.Fatalf("unexpected backoff defaults: %v", got)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[backing]
base_url = "https://api.example.com/"

[cache]
venue_freshness = 60

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be detected")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Backing.BaseURL != "https://api.example.com" {
		t.Fatalf("base url not normalized: %q", cfg.Backing.BaseURL)
	}
	if cfg.Cache.VenueFreshness != 60 {
		t.Fatalf("venue freshness = %d, want 60", cfg.Cache.VenueFreshness)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("log format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[backing]
base_url = "https://api.example.com"

[logging]
format = "yaml"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid log format")
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nope.toml")
	_, _, exists, err := Load(path)
	// Defaults have no backing.base_url, so validation must refuse.
	if err == nil {
		t.Fatal("expected validation error without backing.base_url")
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
}

func TestInspectSkipsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nope.toml")
	cfg, _, exists, err := Inspect(path)
	// Same missing file Load refuses above; Inspect must still return the
	// normalized defaults so they can be displayed.
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if cfg.Backing.BaseURL != "" {
		t.Fatalf("unexpected backing url in defaults: %q", cfg.Backing.BaseURL)
	}
	if cfg.Cache.VenueFreshness != 300 {
		t.Fatalf("venue freshness default = %d, want 300", cfg.Cache.VenueFreshness)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestFreshnessWindowHelper(t *testing.T) {
	cfg := Default()
	if got := cfg.VenueFreshnessWindow(); got != 5*time.Minute {
		t.Fatalf("venue window = %v, want 5m", got)
	}
	if got := cfg.RatingFreshnessWindow(); got != 0 {
		t.Fatalf("rating window = %v, want 0", got)
	}
}
