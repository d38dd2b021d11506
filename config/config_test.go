package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.URL != "https://127.0.0.1" {
		t.Fatalf("URL = %q, want default", cfg.URL)
	}
	if cfg.User != "" || cfg.Token != "" {
		t.Fatalf("missing file produced credentials: %+v", cfg)
	}
}

func TestLoadEmptyURLFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("user: alice\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.URL != "https://127.0.0.1" {
		t.Fatalf("URL = %q, want default", cfg.URL)
	}
	if cfg.User != "alice" {
		t.Fatalf("User = %q", cfg.User)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("url: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("load accepted malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	cfg.URL = "https://kd.example.com"
	cfg.User = "alice"
	cfg.Token = "tok123"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if again.URL != cfg.URL || again.User != cfg.User || again.Token != cfg.Token {
		t.Fatalf("round trip mismatch: %+v", again)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestDraftsDirFollowsExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got, want := cfg.DraftsDir(), filepath.Join(dir, ".kube_drafts"); got != want {
		t.Fatalf("DraftsDir = %q, want %q", got, want)
	}
}

func TestDraftsDirDefaultsToHome(t *testing.T) {
	// The env var points Load at a file that does not exist, but the drafts
	// directory still derives from the home dir when no --config was given.
	t.Setenv(envConfig, filepath.Join(t.TempDir(), "config.yaml"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	if got, want := cfg.DraftsDir(), filepath.Join(home, ".kube_drafts"); got != want {
		t.Fatalf("DraftsDir = %q, want %q", got, want)
	}
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv(envConfig, "/etc/kcli/config.yaml")
	if got := DefaultPath(); got != "/etc/kcli/config.yaml" {
		t.Fatalf("DefaultPath = %q", got)
	}
}
