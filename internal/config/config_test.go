package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg := Load()
	if cfg.BindAddr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.BindAddr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected info, got %s", cfg.LogLevel)
	}
	if cfg.PresetsDir != "./presets" {
		t.Fatalf("expected ./presets, got %s", cfg.PresetsDir)
	}
	if cfg.HistoryDB != "" {
		t.Fatalf("expected history disabled, got %s", cfg.HistoryDB)
	}
	if cfg.DateWindow != 30*24*time.Hour {
		t.Fatalf("expected 30d window, got %v", cfg.DateWindow)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ROWGEN_BIND_ADDR", ":9090")
	t.Setenv("ROWGEN_LOG_LEVEL", "debug")
	t.Setenv("ROWGEN_HISTORY_DB", "postgres://localhost/rowgen")
	t.Setenv("ROWGEN_DATE_WINDOW", "2w")

	cfg := Load()
	if cfg.BindAddr != ":9090" || cfg.LogLevel != "debug" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.HistoryDB != "postgres://localhost/rowgen" {
		t.Fatalf("expected postgres DSN, got %s", cfg.HistoryDB)
	}
	if cfg.DateWindow != 14*24*time.Hour {
		t.Fatalf("expected 2w window, got %v", cfg.DateWindow)
	}
}

func TestLoadDotEnvFillsUnsetOnly(t *testing.T) {
	dir := chdirTemp(t)
	env := "ROWGEN_BIND_ADDR=:7070\nROWGEN_LOG_LEVEL=warn\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROWGEN_LOG_LEVEL", "error")

	cfg := Load()
	if cfg.BindAddr != ":7070" {
		t.Fatalf("expected .env bind addr, got %s", cfg.BindAddr)
	}
	// Real environment wins over the .env file.
	if cfg.LogLevel != "error" {
		t.Fatalf("expected env to win over .env, got %s", cfg.LogLevel)
	}
}

func TestLoadRejectsBadDateWindow(t *testing.T) {
	chdirTemp(t)
	for _, bad := range []string{"soon", "-3d", "0s"} {
		t.Setenv("ROWGEN_DATE_WINDOW", bad)
		if cfg := Load(); cfg.DateWindow != 30*24*time.Hour {
			t.Fatalf("expected default window for %q, got %v", bad, cfg.DateWindow)
		}
	}
}

// chdirTemp moves the test into an empty directory so a developer's
// local .env cannot leak into Load, and clears the variables Load reads.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"ROWGEN_BIND_ADDR", "ROWGEN_LOG_LEVEL", "ROWGEN_PRESETS_DIR",
		"ROWGEN_HISTORY_DB", "ROWGEN_DATE_WINDOW",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}
