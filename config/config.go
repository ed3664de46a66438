package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed dskconv.toml
var defaultConfigData []byte

// Global state for the selected profile
var (
	ProfileName string
	Cylinders   int
	RPM         int
	BitRateKbps int
	Encoding    string
	Interface   string
)

// Config represents the entire TOML configuration structure
type Config struct {
	Default string    `toml:"default"`
	Profile []Profile `toml:"profile"`
}

// Profile describes one drive/format profile
type Profile struct {
	Name      string `toml:"name"`
	Cylinders int    `toml:"cylinders"`
	RPM       int    `toml:"rpm"`
	BitRate   int    `toml:"bitrate"`
	Encoding  string `toml:"encoding"`
	Interface string `toml:"interface"`
}

// configPath determines the config file path based on the operating system
func configPath() (string, error) {
	var configDir string
	var err error

	switch runtime.GOOS {
	case "windows":
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "dskconv")
	default:
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
	}

	return filepath.Join(configDir, ".dskconv"), nil
}

// Initialize loads the configuration file and selects a profile.
// An empty profile name selects the config's `default`. If the config
// file doesn't exist, it is created from the embedded default.
func Initialize(profile string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", dir, err)
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config at %s: %w", path, err)
	}

	conf, err := load(data)
	if err != nil {
		return fmt.Errorf("config at %s: %w", path, err)
	}

	return selectProfile(conf, profile)
}

// load parses and validates raw TOML configuration data.
func load(data []byte) (*Config, error) {
	var conf Config
	if err := toml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	if conf.Default == "" {
		return nil, errors.New("`default` key is missing or empty in config")
	}
	if len(conf.Profile) == 0 {
		return nil, errors.New("no profiles defined in config")
	}

	for _, p := range conf.Profile {
		if p.Name == "" {
			return nil, errors.New("profile with empty name in config")
		}
		if p.Cylinders <= 0 || p.Cylinders > 255 {
			return nil, fmt.Errorf("profile %q has invalid cylinders: %d (must be 1..255)", p.Name, p.Cylinders)
		}
		if p.RPM <= 0 {
			return nil, fmt.Errorf("profile %q has invalid rpm: %d (must be positive)", p.Name, p.RPM)
		}
		if p.BitRate <= 0 {
			return nil, fmt.Errorf("profile %q has invalid bitrate: %d (must be positive)", p.Name, p.BitRate)
		}
	}
	return &conf, nil
}

// selectProfile stores the named profile (or the default) in the
// package globals.
func selectProfile(conf *Config, name string) error {
	if name == "" {
		name = conf.Default
	}

	for i := range conf.Profile {
		p := &conf.Profile[i]
		if p.Name != name {
			continue
		}
		ProfileName = p.Name
		Cylinders = p.Cylinders
		RPM = p.RPM
		BitRateKbps = p.BitRate
		Encoding = p.Encoding
		Interface = p.Interface
		return nil
	}
	return fmt.Errorf("profile %q not found in config", name)
}
