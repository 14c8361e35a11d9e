package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != DefaultBaseURL || cfg.Timeout != DefaultTimeout {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.LogFile != "/tmp/state/authordir/authordir.log" {
		t.Fatalf("unexpected log file: %q", cfg.LogFile)
	}
	if cfg.UIStatePath != "/tmp/state/authordir/ui_state.yaml" {
		t.Fatalf("unexpected ui state path: %q", cfg.UIStatePath)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "base_url: http://localhost:3000/\ntimeout: 3s\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AUTHORDIR_TIMEOUT", "7s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:3000" {
		t.Fatalf("base url must be normalized: %q", cfg.BaseURL)
	}
	if cfg.Timeout != 7*time.Second {
		t.Fatalf("env must override file timeout, got %s", cfg.Timeout)
	}
	if lvl, _ := cfg.Level(); lvl != slog.LevelDebug {
		t.Fatalf("expected debug level, got %s", lvl)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{name: "relative url", mut: func(c *Config) { c.BaseURL = "/api" }, want: "absolute URL"},
		{name: "bad scheme", mut: func(c *Config) { c.BaseURL = "ftp://example.com" }, want: "http and https"},
		{name: "zero timeout", mut: func(c *Config) { c.Timeout = 0 }, want: "timeout"},
		{name: "bad level", mut: func(c *Config) { c.LogLevel = "loud" }, want: "log_level"},
		{name: "ok", mut: func(*Config) {}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(&cfg)
			err := cfg.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestUIState_LoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ui_state.yaml")

	st, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("missing state should not error: %v", err)
	}
	if st != (UIState{}) {
		t.Fatalf("expected empty state for missing file")
	}

	want := UIState{LastAuthorID: 4}
	if err := SaveUIState(path, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := LoadUIState(path)
	if err != nil {
		t.Fatalf("load after save failed: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected loaded state got=%#v want=%#v", got, want)
	}

	if err := os.WriteFile(path, []byte("last_author_id: ["), 0o600); err != nil {
		t.Fatalf("write corrupt state failed: %v", err)
	}
	if _, err := LoadUIState(path); err == nil {
		t.Fatalf("expected parse error for invalid yaml")
	}
}
