package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ROADPLAN_LANES_PER_SIDE", "")
	t.Setenv("ROADPLAN_BOTH_SIDES", "")
	t.Setenv("ROADPLAN_LOG_LEVEL", "")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
settings:
  n_lanes_per_side: 3
  select_opposite: true
preview:
  width: 640
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Settings.NLanesPerSide)
	assert.True(t, cfg.Settings.SelectOpposite)
	assert.True(t, cfg.Settings.CreateBothSides, "unset keys keep defaults")
	assert.Equal(t, 640, cfg.Preview.Width)
	assert.Equal(t, 768, cfg.Preview.Height)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings: [\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Settings.NLanesPerSide = 2
	cfg.Logging.Format = "json"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("lane count and sides", func(t *testing.T) {
		t.Setenv("ROADPLAN_LANES_PER_SIDE", "4")
		t.Setenv("ROADPLAN_BOTH_SIDES", "false")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 4, cfg.Settings.NLanesPerSide)
		assert.False(t, cfg.Settings.CreateBothSides)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv("ROADPLAN_LANES_PER_SIDE", "many")
		t.Setenv("ROADPLAN_BOTH_SIDES", "perhaps")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 1, cfg.Settings.NLanesPerSide)
		assert.True(t, cfg.Settings.CreateBothSides)
	})

	t.Run("log level is lowercased", func(t *testing.T) {
		t.Setenv("ROADPLAN_LOG_LEVEL", "DEBUG")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "negative lanes", mutate: func(c *Config) { c.Settings.NLanesPerSide = -1 }},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "trace" }},
		{name: "unknown format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "zero width", mutate: func(c *Config) { c.Preview.Width = 0 }},
		{name: "zero line width", mutate: func(c *Config) { c.Preview.LineWidth = 0 }},
		{name: "margin too large", mutate: func(c *Config) { c.Preview.Margin = 500 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	zero := DefaultConfig()
	zero.Settings.NLanesPerSide = 0
	assert.NoError(t, zero.Validate(), "zero lanes is allowed")
}
