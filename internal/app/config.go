// Package app provides daemon-level configuration and initialization.
package app

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds the daemon configuration. Capture behavior (output folder,
// toggles, shortcuts) lives in the preferences store, not here.
type Config struct {
	// BridgeAddr is the listen address for the local UI bridge.
	BridgeAddr string `json:"bridge_addr"`
	// DataDir overrides the directory holding preferences.json and
	// history.json when set.
	DataDir string `json:"data_dir,omitempty"`
	// Debug enables debug logging.
	Debug bool `json:"debug"`
	// LogFile mirrors log output into a file when set.
	LogFile string `json:"log_file,omitempty"`
	// DisableTray runs the daemon without a tray icon, for headless use.
	DisableTray bool `json:"disable_tray,omitempty"`
	// DisableShortcuts skips global shortcut registration.
	DisableShortcuts bool `json:"disable_shortcuts,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BridgeAddr: "127.0.0.1:4512",
	}
}

// ConfigPath returns the path to the daemon config file.
func ConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.json")
}

// LoadConfig loads the configuration from disk. A missing file yields
// defaults; a malformed file is an error.
func LoadConfig(configDir string) (*Config, error) {
	path := ConfigPath(configDir)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.BridgeAddr == "" {
		config.BridgeAddr = DefaultConfig().BridgeAddr
	}

	return config, nil
}

// SaveConfig saves the configuration to disk.
func SaveConfig(configDir string, config *Config) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(configDir), data, 0644)
}

// ConfigDir returns the Grab configuration directory, honoring
// XDG_CONFIG_HOME.
func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "grab"), nil
}

// ResolveDataDir returns the directory holding the two store files. The
// config override wins; otherwise the config directory is used so all Grab
// state lives in one place.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return ConfigDir()
}
