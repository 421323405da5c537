package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetHomeFromEnv(t *testing.T) {
	home := filepath.Join(t.TempDir(), "rfhome")
	t.Setenv(HomeEnv, home)

	got, err := GetHome()
	if err != nil {
		t.Fatalf("GetHome() error = %v", err)
	}
	if got != home {
		t.Errorf("GetHome() = %q, want %q", got, home)
	}
	if info, err := os.Stat(home); err != nil || !info.IsDir() {
		t.Errorf("home directory was not created: %v", err)
	}
}

func TestGetHomeDefault(t *testing.T) {
	userHome := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("HOME", userHome)
	t.Setenv("USERPROFILE", userHome)

	got, err := GetHome()
	if err != nil {
		t.Fatalf("GetHome() error = %v", err)
	}
	if want := filepath.Join(userHome, ".rfopener"); got != want {
		t.Errorf("GetHome() = %q, want %q", got, want)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error = %v", err)
	}
	if want := filepath.Join(home, "config.yaml"); got != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, want)
	}
}

func TestHistoryDBPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, home)

	cfg := DefaultConfig()
	got, err := cfg.HistoryDBPath()
	if err != nil {
		t.Fatalf("HistoryDBPath() error = %v", err)
	}
	if want := filepath.Join(home, "history.db"); got != want {
		t.Errorf("HistoryDBPath() = %q, want %q", got, want)
	}

	cfg.History.DBPath = "/custom/history.db"
	got, err = cfg.HistoryDBPath()
	if err != nil {
		t.Fatalf("HistoryDBPath() error = %v", err)
	}
	if got != "/custom/history.db" {
		t.Errorf("HistoryDBPath() = %q, want %q", got, "/custom/history.db")
	}
}
