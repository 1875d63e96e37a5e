// Package config loads the bridge configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/pgv-inc/pitaeeg-go/internal/native"
	"github.com/pgv-inc/pitaeeg-go/sdk/contracts"
)

// Config represents the complete configuration for the LSL bridge.
type Config struct {
	Port     string         `yaml:"port"`     // Serial port of the USB receiver.
	Sensor   string         `yaml:"sensor"`   // Device name to connect to, e.g. "HARU2-001".
	Library  LibraryConfig  `yaml:"library"`  // Native library locations.
	Timeouts TimeoutsConfig `yaml:"timeouts"` // Communication and scan timeouts.
	Channels []int          `yaml:"channels"` // Channel indices to enable; empty enables all.
	LSL      LSLConfig      `yaml:"lsl"`      // Stream outlet identity.
	CSV      CSVConfig      `yaml:"csv"`      // Optional CSV recording.
	Timezone string         `yaml:"timezone"` // IANA zone for recordings; host zone when empty.
	Log      LogConfig      `yaml:"log"`      // Logging settings.
}

// LibraryConfig holds optional paths to the native libraries, each either
// the library file itself or a directory containing it.
type LibraryConfig struct {
	Sensor string `yaml:"sensor"`
	LSL    string `yaml:"lsl"`
}

// TimeoutsConfig holds timing settings.
type TimeoutsConfig struct {
	ComMs      int `yaml:"comMs"`      // Serial communication timeout handed to the native library.
	ScanMs     int `yaml:"scanMs"`     // Native scan timeout handed to the native library.
	ConnectSec int `yaml:"connectSec"` // How long Connect may scan for the sensor.
}

// LSLConfig holds the stream outlet identity.
type LSLConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	SourceID    string `yaml:"sourceId"` // Defaults to "pitaeeg-<sensor>".
	MaxBuffered int    `yaml:"maxBufferedSec"`
}

// CSVConfig holds CSV recording settings.
type CSVConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`  // Output directory; working directory when empty.
	File    string `yaml:"file"` // File name; device start time when empty.
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error.
	File  string `yaml:"file"`  // Rotated log file; console when empty.
}

func getDefaultConfig() *Config {
	return &Config{
		Timeouts: TimeoutsConfig{
			ComMs:      2000,
			ScanMs:     5000,
			ConnectSec: 10,
		},
		LSL: LSLConfig{
			Enabled: true,
			Name:    "PitaEEG",
			Type:    "EEG",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := getDefaultConfig()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, err
		}
	}
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("PITAEEG_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("PITAEEG_SENSOR"); v != "" {
		cfg.Sensor = v
	}
	if v := os.Getenv("PITAEEG_LIBRARY_PATH"); v != "" {
		cfg.Library.Sensor = v
	}
}

// Validate checks the configuration for values the bridge cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	for _, ch := range c.Channels {
		if ch < 0 || ch >= native.MaxCh {
			return fmt.Errorf("channel index %d out of range 0-%d", ch, native.MaxCh-1)
		}
	}
	if c.Timeouts.ConnectSec <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone, defaulting to the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LogLevel maps the configured level name to the logger contract.
func (c *Config) LogLevel() (contracts.LogLevel, error) {
	switch c.Log.Level {
	case "", "info":
		return contracts.InfoLevel, nil
	case "debug":
		return contracts.DebugLevel, nil
	case "warn":
		return contracts.WarnLevel, nil
	case "error":
		return contracts.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
}

// ComTimeout returns the serial communication timeout as a duration.
func (c *Config) ComTimeout() time.Duration {
	return time.Duration(c.Timeouts.ComMs) * time.Millisecond
}

// ScanTimeout returns the native scan timeout as a duration.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Timeouts.ScanMs) * time.Millisecond
}

// ConnectTimeout returns how long Connect may scan for the sensor.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Timeouts.ConnectSec) * time.Second
}
