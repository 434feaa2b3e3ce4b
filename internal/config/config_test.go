package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLOUDVAULT_API_URL", "")

	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.UploadCapMB != DefaultUploadCapMB {
		t.Errorf("UploadCapMB = %d, want %d", cfg.UploadCapMB, DefaultUploadCapMB)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("CLOUDVAULT_API_URL", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "api_base_url: https://vault.internal.example.com\nupload_cap_mb: 10\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIBaseURL != "https://vault.internal.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.UploadCapMB != 10 {
		t.Errorf("UploadCapMB = %d, want 10", cfg.UploadCapMB)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: https://from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CLOUDVAULT_API_URL", "https://from-env")
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "https://from-env" {
		t.Errorf("env should beat file, got %q", cfg.APIBaseURL)
	}

	cfg, err = Load(path, "https://from-flag")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "https://from-flag" {
		t.Errorf("flag should beat env, got %q", cfg.APIBaseURL)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if err == nil {
		t.Error("an explicitly named but missing config file should fail")
	}
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLOUDVAULT_API_URL", "")

	if _, err := Load("", ""); err != nil {
		t.Errorf("missing default config file should not fail: %v", err)
	}
}
