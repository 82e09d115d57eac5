package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML configuration for the powerkeyd daemon.
//
// The config file is the primary configuration surface; flags exist for
// small overrides and for environments where a file is awkward. Defaults
// and validation are centralized here so the rest of the code can assume
// a well-formed config.
type Config struct {
	// Power key input configuration
	Input InputConfig `yaml:"input"`

	// CPU frequency bounds applied in power-saving mode
	CPU CPUConfig `yaml:"cpu"`

	// Display sysfs path overrides (autodetected when empty)
	Display DisplayConfig `yaml:"display"`

	// Radios toggled alongside the mode
	Radios RadiosConfig `yaml:"radios"`

	// Replace hardware writes with logging only
	DryRun bool `yaml:"dry_run"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type InputConfig struct {
	Device         string  `yaml:"device,omitempty"` // empty: autodetect under /dev/input/by-path
	HoldTriggerSec float64 `yaml:"hold_trigger_sec"`
}

type CPUConfig struct {
	PolicyPath string `yaml:"policy_path,omitempty"` // empty: kernel default policy0

	// Power-saving bounds in MHz. Both zero disables the CPU step.
	SavingMinMHz int `yaml:"saving_min_mhz,omitempty"`
	SavingMaxMHz int `yaml:"saving_max_mhz,omitempty"`
}

type DisplayConfig struct {
	BacklightPath   string `yaml:"backlight_path,omitempty"`
	FramebufferPath string `yaml:"framebuffer_path,omitempty"`
	DRMPanelPath    string `yaml:"drm_panel_path,omitempty"`
}

type RadiosConfig struct {
	ToggleWifi          bool   `yaml:"toggle_wifi"`
	WifiRfkillPath      string `yaml:"wifi_rfkill_path,omitempty"`
	ToggleBluetooth     bool   `yaml:"toggle_bluetooth"`
	BluetoothRfkillPath string `yaml:"bluetooth_rfkill_path,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a fully-populated Config with defaults.
// Keep this aligned with constants.go defaults and the CLI defaults.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			HoldTriggerSec: defaultHoldTriggerSec,
		},
		CPU: CPUConfig{
			PolicyPath: defaultCPUPolicyPath,
		},
		Radios: RadiosConfig{
			ToggleWifi:      false,
			ToggleBluetooth: false,
		},
		DryRun: false,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile reads and parses a YAML config file.
//
// Unknown fields are rejected (helps catch typos) via KnownFields(true).
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Ensure there's no trailing garbage after the document.
	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides applies overrides from flags on top of a loaded config.
// Each override is applied only when its pointer is non-nil, so flags that
// were not set on the command line leave the file values alone.
type FlagOverrides struct {
	Device         *string
	HoldTriggerSec *float64

	PolicyPath    *string
	SavingCPUFreq *string // "min,max" in MHz; "" disables the CPU step

	ToggleWifi      *bool
	ToggleBluetooth *bool

	DryRun   *bool
	LogLevel *string
}

// Apply merges the overrides into cfg. Nil pointers are ignored.
func (o FlagOverrides) Apply(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if o.Device != nil {
		cfg.Input.Device = *o.Device
	}
	if o.HoldTriggerSec != nil {
		cfg.Input.HoldTriggerSec = *o.HoldTriggerSec
	}
	if o.PolicyPath != nil {
		cfg.CPU.PolicyPath = *o.PolicyPath
	}
	if o.SavingCPUFreq != nil {
		min, max, err := parseSavingCPUFreq(*o.SavingCPUFreq)
		if err != nil {
			return err
		}
		cfg.CPU.SavingMinMHz = min
		cfg.CPU.SavingMaxMHz = max
	}
	if o.ToggleWifi != nil {
		cfg.Radios.ToggleWifi = *o.ToggleWifi
	}
	if o.ToggleBluetooth != nil {
		cfg.Radios.ToggleBluetooth = *o.ToggleBluetooth
	}
	if o.DryRun != nil {
		cfg.DryRun = *o.DryRun
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	return nil
}

// parseSavingCPUFreq parses the "min,max" MHz form used by the
// -saving-cpu-freq flag. An empty string disables the CPU step.
func parseSavingCPUFreq(s string) (minMHz, maxMHz int, err error) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("saving cpu freq must be \"min,max\" in MHz, got %q", s)
	}
	minMHz, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("saving cpu freq min: %w", err)
	}
	maxMHz, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("saving cpu freq max: %w", err)
	}
	return minMHz, maxMHz, nil
}

// Validate checks config invariants and fills in dependent defaults.
// This is intended to be called after defaults + file + overrides.
func (c *Config) Validate() error {
	if c.Input.HoldTriggerSec <= 0 {
		return errors.New("input.hold_trigger_sec must be > 0")
	}

	if c.CPU.PolicyPath == "" {
		c.CPU.PolicyPath = defaultCPUPolicyPath
	}
	if (c.CPU.SavingMinMHz == 0) != (c.CPU.SavingMaxMHz == 0) {
		return errors.New("cpu.saving_min_mhz and cpu.saving_max_mhz must be set together")
	}
	if c.CPU.SavingMinMHz < 0 || c.CPU.SavingMaxMHz < 0 {
		return errors.New("cpu saving frequency bounds must be >= 0")
	}
	if c.CPU.SavingMinMHz > c.CPU.SavingMaxMHz {
		return errors.New("cpu.saving_min_mhz must be <= cpu.saving_max_mhz")
	}

	// Enabled radios without an explicit rfkill path get the platform default.
	if c.Radios.ToggleWifi && c.Radios.WifiRfkillPath == "" {
		c.Radios.WifiRfkillPath = defaultWifiRfkillPath
	}
	if c.Radios.ToggleBluetooth && c.Radios.BluetoothRfkillPath == "" {
		c.Radios.BluetoothRfkillPath = defaultBluetoothRfkillPath
	}

	if _, ok := logLevels[strings.ToLower(c.Logging.Level)]; !ok {
		return fmt.Errorf("logging.level must be one of error, warn, info, debug (got %q)", c.Logging.Level)
	}

	return nil
}

// HoldTrigger returns the short/long press threshold as a duration.
func (c *Config) HoldTrigger() time.Duration {
	return time.Duration(c.Input.HoldTriggerSec * float64(time.Second))
}

// SavingCPUFreq returns the configured power-saving bounds, or nil when
// the CPU step is disabled.
func (c *Config) SavingCPUFreq() *cpuFreqBounds {
	if c.CPU.SavingMinMHz == 0 && c.CPU.SavingMaxMHz == 0 {
		return nil
	}
	return &cpuFreqBounds{MinMHz: c.CPU.SavingMinMHz, MaxMHz: c.CPU.SavingMaxMHz}
}

// EnabledRadios returns the radios toggled alongside the mode, in the
// order they are applied.
func (c *Config) EnabledRadios() []Radio {
	var radios []Radio
	if c.Radios.ToggleWifi {
		radios = append(radios, RadioWifi)
	}
	if c.Radios.ToggleBluetooth {
		radios = append(radios, RadioBluetooth)
	}
	return radios
}

// RfkillPaths returns the rfkill directory for each enabled radio.
func (c *Config) RfkillPaths() map[Radio]string {
	paths := make(map[Radio]string)
	if c.Radios.ToggleWifi {
		paths[RadioWifi] = c.Radios.WifiRfkillPath
	}
	if c.Radios.ToggleBluetooth {
		paths[RadioBluetooth] = c.Radios.BluetoothRfkillPath
	}
	return paths
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
