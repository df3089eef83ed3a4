package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DeviceConfig stores per-device settings.
type DeviceConfig struct {
	Nickname string `yaml:"nickname,omitempty"`
	WiFiIP   string `yaml:"wifi_ip,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Port                  int                     `yaml:"port"`
	Retries               int                     `yaml:"retries"`
	RetryDelaySeconds     float64                 `yaml:"retry_delay_seconds"`
	CommandTimeoutSeconds float64                 `yaml:"command_timeout_seconds"`
	ConnectTimeoutSeconds float64                 `yaml:"connect_timeout_seconds"`
	InterfacePreference   []string                `yaml:"interface_preference"`
	LogLevel              string                  `yaml:"log_level"`
	Devices               map[string]DeviceConfig `yaml:"devices,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:                  5555,
		Retries:               3,
		RetryDelaySeconds:     2.0,
		CommandTimeoutSeconds: 10.0,
		ConnectTimeoutSeconds: 15.0,
		InterfacePreference:   []string{"wlan", "wifi", "eth", "rmnet"},
		LogLevel:              "info",
		Devices:               make(map[string]DeviceConfig),
	}
}

// Validate rejects values the workflow cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in 1..65535, got %d", c.Port)
	}
	if c.Retries < 1 {
		return fmt.Errorf("retries must be at least 1, got %d", c.Retries)
	}
	if c.RetryDelaySeconds < 0 {
		return fmt.Errorf("retry_delay_seconds must not be negative, got %g", c.RetryDelaySeconds)
	}
	return nil
}

// ConfigDir returns the config directory path.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "adbwifi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "adbwifi")
}

// ConfigPath returns the config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Devices == nil {
		cfg.Devices = make(map[string]DeviceConfig)
	}
	if len(cfg.InterfacePreference) == 0 {
		cfg.InterfacePreference = DefaultConfig().InterfacePreference
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
