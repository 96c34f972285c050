package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"boatsim/internal/config"
	"boatsim/internal/core"
	"boatsim/internal/current"
)

func writeYAML(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "boatsim.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	s := cfg.Scenario
	assert.Equal(t, core.Size{W: 160, H: 90}, s.Size())
	assert.Equal(t, 0.3, s.Dispersion)
	assert.Equal(t, 0.7, s.MaxSpeed)
	assert.Equal(t, core.V(5, 40), s.Start.Vec())
	assert.Equal(t, core.V(155, 40), s.Goal.Vec())
	assert.Equal(t, 1.0, s.Drift)
	assert.Equal(t, 1.0, s.StepSize)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, []string{"inert", "fixed-heading", "goal-seeking"}, s.Policies)
	assert.Equal(t, current.Params{Dispersion: 0.3, MaxSpeed: 0.7, Normalization: current.NormalizeComponent}, s.FieldParams())

	assert.Equal(t, "boatsim", cfg.Logger.ServiceName)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "last.png", cfg.Output.Figure)
	assert.Equal(t, 8, cfg.Output.QuiverSpacing)
	assert.Equal(t, 64, cfg.Sweep.Runs)
	assert.Positive(t, cfg.Sweep.EffectiveWorkers())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeYAML(t, map[string]any{
		"scenario": map[string]any{
			"width":    40,
			"height":   20,
			"seed":     7,
			"start":    map[string]any{"x": 2, "y": 10},
			"goal":     map[string]any{"x": 38, "y": 10},
			"policies": []string{"goal-seeking"},
		},
		"logger": map[string]any{"format": "json", "level": "debug"},
	})

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, core.Size{W: 40, H: 20}, cfg.Scenario.Size())
	assert.Equal(t, int64(7), cfg.Scenario.Seed)
	assert.Equal(t, core.V(38, 10), cfg.Scenario.Goal.Vec())
	assert.Equal(t, []string{"goal-seeking"}, cfg.Scenario.Policies)
	assert.Equal(t, "json", cfg.Logger.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.3, cfg.Scenario.Dispersion)
	assert.Equal(t, 5000, cfg.Scenario.MaxSteps)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeYAML(t, map[string]any{"scenario": map[string]any{"seed": 7}})
	t.Setenv("BOATSIM_SCENARIO_SEED", "99")
	t.Setenv("BOATSIM_SCENARIO_MAX_SPEED", "1.5")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Scenario.Seed)
	assert.Equal(t, 1.5, cfg.Scenario.MaxSpeed)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_NoFileInWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 160, cfg.Scenario.Width)
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	path := writeYAML(t, map[string]any{"scenario": map[string]any{"width": 2}})
	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "scenario.width")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		key    string
	}{
		{"height", func(c *config.Config) { c.Scenario.Height = 1 }, "scenario.height"},
		{"dispersion one", func(c *config.Config) { c.Scenario.Dispersion = 1 }, "scenario.dispersion"},
		{"dispersion negative", func(c *config.Config) { c.Scenario.Dispersion = -0.1 }, "scenario.dispersion"},
		{"max speed", func(c *config.Config) { c.Scenario.MaxSpeed = -1 }, "scenario.max_speed"},
		{"normalization", func(c *config.Config) { c.Scenario.Normalization = "speed" }, "scenario.normalization"},
		{"step size", func(c *config.Config) { c.Scenario.StepSize = -1 }, "scenario.step_size"},
		{"max steps", func(c *config.Config) { c.Scenario.MaxSteps = 0 }, "scenario.max_steps"},
		{"no policies", func(c *config.Config) { c.Scenario.Policies = nil }, "scenario.policies"},
		{"unknown policy", func(c *config.Config) { c.Scenario.Policies = []string{"sail"} }, "scenario.policies"},
		{"log format", func(c *config.Config) { c.Logger.Format = "xml" }, "logger.format"},
		{"quiver spacing", func(c *config.Config) { c.Output.QuiverSpacing = 0 }, "output.quiver_spacing"},
		{"figure size", func(c *config.Config) { c.Output.FigureWidth = 0 }, "output.figure_width"},
		{"viewer scale", func(c *config.Config) { c.Viewer.Scale = 0 }, "viewer.scale"},
		{"playback tps", func(c *config.Config) { c.Viewer.PlaybackTPS = 0 }, "viewer.playback_tps"},
		{"sweep runs", func(c *config.Config) { c.Sweep.Runs = 0 }, "sweep.runs"},
		{"sweep workers", func(c *config.Config) { c.Sweep.Workers = -2 }, "sweep.workers"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestValidate_CalmFieldAllowed(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Scenario.MaxSpeed = 0
	cfg.Scenario.Dispersion = 0
	assert.NoError(t, cfg.Validate())
}
