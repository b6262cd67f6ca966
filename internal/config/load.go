package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides config discovery.
const EnvConfigPath = "MIDGARD_XR_CONFIG"

// Load builds the effective configuration: defaults, then the config file,
// then command-line flags, and validates the result. flags may be nil.
func Load(flags *Flags) (*Config, error) {
	cfg := Default()

	path := FindConfigFile(flags)
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// FindConfigFile returns the config file to read, or "" when none exists.
// An explicit -config flag wins over $MIDGARD_XR_CONFIG, which wins over
// ./xr.yaml and the per-user config directory.
func FindConfigFile(flags *Flags) string {
	if flags != nil && flags.Config != "" {
		return flags.Config
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	for _, path := range []string{"xr.yaml", filepath.Join(ConfigDir(), "config.yaml")} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for this OS.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MidgardXR")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "MidgardXR")
		}
		return filepath.Join(home, "AppData", "Roaming", "MidgardXR")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "midgard-xr")
	}
	return filepath.Join(home, ".config", "midgard-xr")
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled setting does not silently fall back to its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
