package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings are the editor options the planner reads on every intent.
type Settings struct {
	// NLanesPerSide is how many lanes a new road gets in each direction
	NLanesPerSide int `yaml:"n_lanes_per_side" json:"n_lanes_per_side"`

	// CreateBothSides adds mirrored lanes running the opposite way
	CreateBothSides bool `yaml:"create_both_sides" json:"create_both_sides"`

	// SelectParallel extends a selection to parallel lanes
	SelectParallel bool `yaml:"select_parallel" json:"select_parallel"`

	// SelectOpposite lets parallel selection include opposite-direction lanes
	SelectOpposite bool `yaml:"select_opposite" json:"select_opposite"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		NLanesPerSide:   1,
		CreateBothSides: true,
		SelectParallel:  true,
		SelectOpposite:  false,
	}
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // json, console
}

// PreviewConfig configures PNG previews.
type PreviewConfig struct {
	Width     int     `yaml:"width" json:"width"`
	Height    int     `yaml:"height" json:"height"`
	Margin    float64 `yaml:"margin" json:"margin"`
	LineWidth float64 `yaml:"line_width" json:"line_width"`
}

// Config is the roadplan configuration file.
type Config struct {
	Settings Settings      `yaml:"settings" json:"settings"`
	Logging  LoggingConfig `yaml:"logging" json:"logging"`
	Preview  PreviewConfig `yaml:"preview" json:"preview"`
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging encodings.
var ValidLogFormats = []string{"json", "console"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Settings: DefaultSettings(),
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Preview: PreviewConfig{
			Width:     1024,
			Height:    768,
			Margin:    24,
			LineWidth: 2,
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ROADPLAN_LANES_PER_SIDE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Settings.NLanesPerSide = n
		}
	}
	if v := os.Getenv("ROADPLAN_BOTH_SIDES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Settings.CreateBothSides = b
		}
	}
	if v := os.Getenv("ROADPLAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Settings.NLanesPerSide < 0 {
		return fmt.Errorf("invalid n_lanes_per_side: %d (must be >= 0)", c.Settings.NLanesPerSide)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("invalid preview size: %dx%d", c.Preview.Width, c.Preview.Height)
	}
	if c.Preview.LineWidth <= 0 {
		return fmt.Errorf("invalid preview line_width: %v", c.Preview.LineWidth)
	}
	if c.Preview.Margin < 0 || 2*c.Preview.Margin >= float64(min(c.Preview.Width, c.Preview.Height)) {
		return fmt.Errorf("invalid preview margin: %v", c.Preview.Margin)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
