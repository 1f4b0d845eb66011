// Package config persists twistctl settings: the device-name prefix to scan
// for and optional per-slot styling presets applied at setup.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SlotStyle is the styling preset for one encoder slot. Nil fields are left
// at the device's current state.
type SlotStyle struct {
	Slot             int      `json:"slot"` // 0-15
	Hue              *float64 `json:"hue,omitempty"`               // 0..1
	BrightnessRGB    *float64 `json:"brightness_rgb,omitempty"`    // 0..1
	BrightnessRotary *float64 `json:"brightness_rotary,omitempty"` // 0..1
	Animation        string   `json:"animation,omitempty"`         // "strobe", "pulse", "rainbow"
	AnimationRate    uint8    `json:"animation_rate,omitempty"`    // 0-7
}

// Config holds twistctl configuration.
type Config struct {
	DeviceName string      `json:"device_name,omitempty"` // port-name prefix override
	Slots      []SlotStyle `json:"slots,omitempty"`
}

// configDir returns the platform-appropriate config directory.
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "twistctl"), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from path, or from the default location when path
// is empty. A missing file yields the zero config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, or to the default location when path is
// empty, creating the directory if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		var err error
		if path, err = Path(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
