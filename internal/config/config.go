// Package config provides client configuration and session persistence for
// the CloudVault CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const (
	// DefaultAPIBaseURL is the production backend origin.
	DefaultAPIBaseURL = "https://cloudvault-backend-ntkz.onrender.com"

	// DefaultUploadCapMB is the advisory client-side upload limit. The
	// backend enforces the authoritative limit.
	DefaultUploadCapMB = 50

	// ConfigDirName is the per-user directory under the OS config root.
	ConfigDirName = "cloudvault"
)

// Config holds client settings. Resolution order: flag > environment >
// config file > defaults.
type Config struct {
	APIBaseURL  string `yaml:"api_base_url"`
	UploadCapMB int64  `yaml:"upload_cap_mb"`
}

// Dir returns the per-user configuration directory for the CLI.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(base, ConfigDirName), nil
}

// Load resolves the client configuration. path and flagBaseURL come from
// the --config and --api-url flags and may be empty. A missing config file
// is not an error unless the user named one explicitly.
func Load(path, flagBaseURL string) (*Config, error) {
	cfg := &Config{
		APIBaseURL:  DefaultAPIBaseURL,
		UploadCapMB: DefaultUploadCapMB,
	}

	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case explicit:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if env := os.Getenv("CLOUDVAULT_API_URL"); env != "" {
		cfg.APIBaseURL = env
	}
	if flagBaseURL != "" {
		cfg.APIBaseURL = flagBaseURL
	}

	if cfg.UploadCapMB <= 0 {
		cfg.UploadCapMB = DefaultUploadCapMB
	}
	return cfg, nil
}
