// Package config loads the CLI configuration from the user's config
// directory and resolves it into grids, devices and flags.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"deviceprofile/device"
	"deviceprofile/flags"
	"deviceprofile/grid"
	"deviceprofile/log"
	"deviceprofile/profile"
)

const (
	ConfigFileName = "config.json"
	defaultGrid    = "5x6"
	defaultDevice  = "phone"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".deviceprofile"), nil
}

// Config represents the application configuration
type Config struct {
	// DefaultGrid is the grid used when a command does not name one.
	DefaultGrid string `json:"default_grid"`
	// DefaultDevice is the device preset used when a command does not name one.
	DefaultDevice string `json:"default_device"`
	// GridFile is an optional YAML file of grids. Grids in it replace
	// builtin grids of the same name.
	GridFile string `json:"grid_file,omitempty"`
	// DevicesFile is an optional YAML file of device presets, merged the same
	// way.
	DevicesFile string `json:"devices_file,omitempty"`
	// Preferences are applied to every build.
	Preferences profile.Preferences `json:"preferences"`
	// Flags overrides toggle defaults.
	Flags map[string]bool `json:"flags,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultGrid:   defaultGrid,
		DefaultDevice: defaultDevice,
	}
}

// Validate reports unknown flag names and negative multipliers.
func (c *Config) Validate() error {
	known := make(map[string]bool)
	for _, name := range flags.Names() {
		known[name] = true
	}
	var unknown []string
	for name := range c.Flags {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown flags %v", unknown)
	}
	if err := c.Preferences.Validate(); err != nil {
		return err
	}
	return nil
}

// FlagProvider returns the configured toggles. Toggles the config does not
// set keep their defaults.
func (c *Config) FlagProvider() flags.Provider {
	return flags.Static(c.Flags)
}

// Grids returns the builtin grids overlaid with the grid file, if any.
func (c *Config) Grids() ([]*grid.Spec, error) {
	builtin := grid.Builtin()
	if c.GridFile == "" {
		return builtin, nil
	}
	extra, err := grid.LoadFile(c.GridFile)
	if err != nil {
		return nil, err
	}
	return grid.Merge(builtin, extra), nil
}

// Devices returns the builtin presets overlaid with the devices file, if
// any.
func (c *Config) Devices() ([]device.Preset, error) {
	builtin := device.Presets()
	if c.DevicesFile == "" {
		return builtin, nil
	}
	extra, err := device.LoadPresetsFile(c.DevicesFile)
	if err != nil {
		return nil, err
	}
	out := builtin
	for _, p := range extra {
		replaced := false
		for i := range out {
			if out[i].Name == p.Name {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, p)
		}
	}
	return out, nil
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := readLocked(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		log.WarningLog.Printf("config file at %s: %v", configPath, err)
	}

	return config
}

// readLocked reads path under a shared lock so a concurrent save is never
// seen half written.
func readLocked(path string) ([]byte, error) {
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, err
	}
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WarningLog.Printf("%v", err)
		}
	}()
	return os.ReadFile(path)
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	lock := NewFileLock(configPath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.WarningLog.Printf("%v", err)
		}
	}()
	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
