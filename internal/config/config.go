package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gps-time/internal/gps"
)

const (
	DefaultDevice = "/dev/ttyu0"
	DefaultBaud   = 9600
)

type Config struct {
	GPS     GPSConfig    `yaml:"gps"`
	Clock   ClockConfig  `yaml:"clock"`
	Record  RecordConfig `yaml:"record"`
	Replay  ReplayConfig `yaml:"replay"`
	Verbose bool         `yaml:"verbose"`
}

type GPSConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

type ClockConfig struct {
	// Timezone is the zone RMC date/time fields are read in: "utc" or
	// "local". RMC fields are UTC; "local" matches tools built on mktime(3).
	Timezone string `yaml:"timezone"`
	DryRun   bool   `yaml:"dry_run"`
}

// RecordConfig captures raw serial reads to a file for later replay.
type RecordConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

// ReplayConfig reads a capture file instead of the serial device.
type ReplayConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`

	// Speed scales the recorded timing; 0 replays without waiting.
	Speed float64 `yaml:"speed"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		GPS:    GPSConfig{Device: DefaultDevice, Baud: DefaultBaud},
		Clock:  ClockConfig{Timezone: "utc"},
		Replay: ReplayConfig{Speed: 1},
	}
}

// Load reads a YAML config file. Keys absent from the file keep their
// defaults.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config and normalizes the timezone name.
func (c *Config) Validate() error {
	c.GPS.Device = strings.TrimSpace(c.GPS.Device)
	if c.GPS.Device == "" {
		return fmt.Errorf("gps.device is required")
	}
	if !gps.SupportedBaud(c.GPS.Baud) {
		return fmt.Errorf("gps.baud %d is not a supported rate", c.GPS.Baud)
	}
	tz := strings.ToLower(strings.TrimSpace(c.Clock.Timezone))
	if tz == "" {
		tz = "utc"
	}
	if tz != "utc" && tz != "local" {
		return fmt.Errorf("clock.timezone must be 'utc' or 'local'")
	}
	c.Clock.Timezone = tz

	if c.Record.Enable && c.Record.Path == "" {
		return fmt.Errorf("record.path is required when record.enable is true")
	}
	if c.Replay.Enable {
		if c.Replay.Path == "" {
			return fmt.Errorf("replay.path is required when replay.enable is true")
		}
		if c.Replay.Speed < 0 {
			return fmt.Errorf("replay.speed must be >= 0")
		}
	}
	if c.Record.Enable && c.Replay.Enable {
		return fmt.Errorf("record and replay cannot both be enabled")
	}
	return nil
}

// Location returns the *time.Location for Clock.Timezone.
func (c Config) Location() *time.Location {
	if c.Clock.Timezone == "local" {
		return time.Local
	}
	return time.UTC
}
