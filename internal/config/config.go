// Package config handles persisted application preferences.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	DeviceName          string `json:"device_name"`
	DownloadFolder      string `json:"download_folder"`
	RunInBackground     bool   `json:"run_in_background"`
	EnableNotifications bool   `json:"enable_notifications"`
	Theme               string `json:"theme"` // "light", "dark", "system"
	WindowWidth         int    `json:"window_width"`
	WindowHeight        int    `json:"window_height"`
	LogLevel            string `json:"log_level"`
	LogPath             string `json:"log_path"`
}

// EnvOverrides are read from PACKET_* environment variables and take
// precedence over the file.
type EnvOverrides struct {
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogPath    string `envconfig:"LOG_PATH"`
	SocketPath string `envconfig:"SOCKET_PATH"`
	Profile    string `envconfig:"PROFILE" default:"default"`
}

// ConfigManager handles loading and saving configuration.
type ConfigManager struct {
	config *AppConfig
	env    EnvOverrides
	path   string
	mu     sync.RWMutex
}

// DefaultConfigDir returns ~/.config/packet, or "." when the home directory
// cannot be resolved.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "packet")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *AppConfig {
	homeDir, _ := os.UserHomeDir()
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "Packet"
	}

	return &AppConfig{
		DeviceName:          hostname,
		DownloadFolder:      filepath.Join(homeDir, "Downloads"),
		RunInBackground:     true,
		EnableNotifications: true,
		Theme:               "system",
		WindowWidth:         480,
		WindowHeight:        640,
		LogLevel:            "info",
		LogPath:             filepath.Join(DefaultConfigDir(), "logs", "packet.log"),
	}
}

// LoadEnv reads the PACKET_* environment overrides.
func LoadEnv() (EnvOverrides, error) {
	var env EnvOverrides
	if err := envconfig.Process("packet", &env); err != nil {
		return EnvOverrides{}, fmt.Errorf("failed to load environment: %w", err)
	}
	return env, nil
}

// NewConfigManager creates a config manager backed by configPath. A missing
// file yields the defaults.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	cm := &ConfigManager{
		path: configPath,
		env:  env,
	}

	if err := cm.Load(); err != nil {
		if os.IsNotExist(err) {
			cm.config = DefaultConfig()
			return cm, nil
		}
		return nil, err
	}

	return cm, nil
}

// Load reads the configuration from disk.
func (cm *ConfigManager) Load() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := os.ReadFile(cm.path)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parse %s: %w", cm.path, err)
	}

	cm.config = config
	return nil
}

// Save writes the configuration to disk.
func (cm *ConfigManager) Save() error {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.save()
}

// Get returns a copy of the current configuration with environment
// overrides applied.
func (cm *ConfigManager) Get() AppConfig {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	cfg := *cm.config
	if cm.env.LogLevel != "" {
		cfg.LogLevel = cm.env.LogLevel
	}
	if cm.env.LogPath != "" {
		cfg.LogPath = cm.env.LogPath
	}
	return cfg
}

// Stored returns a copy of the configuration as persisted, without
// environment overrides.
func (cm *ConfigManager) Stored() AppConfig {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return *cm.config
}

// Env returns the environment overrides.
func (cm *ConfigManager) Env() EnvOverrides {
	return cm.env
}

// Set updates the configuration and persists it.
func (cm *ConfigManager) Set(config *AppConfig) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config = config
	return cm.save()
}

// RunInBackground reports whether closing the window should only hide it.
func (cm *ConfigManager) RunInBackground() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.RunInBackground
}

// save writes config without locking (caller must hold lock).
func (cm *ConfigManager) save() error {
	dir := filepath.Dir(cm.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cm.path, data, 0600)
}
