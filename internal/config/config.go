// Package config loads boatsim settings from defaults, an optional YAML file,
// BOATSIM_* environment variables and command-line flags, in rising order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"boatsim/internal/core"
	"boatsim/internal/current"
	"boatsim/internal/steering"
	"boatsim/internal/trajectory"
)

// EnvPrefix is prepended to every environment override, e.g. BOATSIM_SCENARIO_SEED.
const EnvPrefix = "BOATSIM"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the configuration tree.
type Config struct {
	Logger   LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Scenario Scenario     `mapstructure:"scenario" yaml:"scenario"`
	Output   OutputConfig `mapstructure:"output" yaml:"output"`
	Viewer   ViewerConfig `mapstructure:"viewer" yaml:"viewer"`
	Sweep    SweepConfig  `mapstructure:"sweep" yaml:"sweep"`
}

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// Point is a position in grid units.
type Point struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
}

// Vec converts the point to a core.Vec.
func (p Point) Vec() core.Vec { return core.V(p.X, p.Y) }

// Scenario describes one field plus the boats simulated through it.
type Scenario struct {
	Width         int      `mapstructure:"width" yaml:"width"`
	Height        int      `mapstructure:"height" yaml:"height"`
	Dispersion    float64  `mapstructure:"dispersion" yaml:"dispersion"`
	MaxSpeed      float64  `mapstructure:"max_speed" yaml:"max_speed"`
	Normalization string   `mapstructure:"normalization" yaml:"normalization"`
	Start         Point    `mapstructure:"start" yaml:"start"`
	Goal          Point    `mapstructure:"goal" yaml:"goal"`
	Drift         float64  `mapstructure:"drift" yaml:"drift"`
	StepSize      float64  `mapstructure:"step_size" yaml:"step_size"`
	Seed          int64    `mapstructure:"seed" yaml:"seed"`
	MaxSteps      int      `mapstructure:"max_steps" yaml:"max_steps"`
	Policies      []string `mapstructure:"policies" yaml:"policies"`
}

// Size returns the grid dimensions.
func (s Scenario) Size() core.Size { return core.Size{W: s.Width, H: s.Height} }

// FieldParams returns the generator parameters.
func (s Scenario) FieldParams() current.Params {
	return current.Params{
		Dispersion:    s.Dispersion,
		MaxSpeed:      s.MaxSpeed,
		Normalization: current.Normalization(s.Normalization),
	}
}

// Options returns the integrator options.
func (s Scenario) Options() trajectory.Options {
	return trajectory.Options{StepSize: s.StepSize, Drift: s.Drift, MaxSteps: s.MaxSteps}
}

// OutputConfig controls what `boatsim run` writes.
type OutputConfig struct {
	Figure        string `mapstructure:"figure" yaml:"figure"`
	JSON          string `mapstructure:"json" yaml:"json"`
	FigureWidth   int    `mapstructure:"figure_width" yaml:"figure_width"`
	FigureHeight  int    `mapstructure:"figure_height" yaml:"figure_height"`
	QuiverSpacing int    `mapstructure:"quiver_spacing" yaml:"quiver_spacing"`
	IncludeField  bool   `mapstructure:"include_field" yaml:"include_field"`
}

// ViewerConfig controls the ebiten window.
type ViewerConfig struct {
	Scale       int `mapstructure:"scale" yaml:"scale"`
	TPS         int `mapstructure:"tps" yaml:"tps"`
	PlaybackTPS int `mapstructure:"playback_tps" yaml:"playback_tps"`
	HUDWidth    int `mapstructure:"hud_width" yaml:"hud_width"`
}

// SweepConfig controls `boatsim sweep`.
type SweepConfig struct {
	Runs      int   `mapstructure:"runs" yaml:"runs"`
	Workers   int   `mapstructure:"workers" yaml:"workers"`
	FirstSeed int64 `mapstructure:"first_seed" yaml:"first_seed"`
}

// EffectiveWorkers resolves Workers == 0 to the number of CPUs.
func (s SweepConfig) EffectiveWorkers() int {
	if s.Workers <= 0 {
		return runtime.NumCPU()
	}
	return s.Workers
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "boatsim")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	// -- Scenario --
	v.SetDefault("scenario.width", 160)
	v.SetDefault("scenario.height", 90)
	v.SetDefault("scenario.dispersion", 0.3)
	v.SetDefault("scenario.max_speed", 0.7)
	v.SetDefault("scenario.normalization", string(current.NormalizeComponent))
	v.SetDefault("scenario.start.x", 5.0)
	v.SetDefault("scenario.start.y", 40.0)
	v.SetDefault("scenario.goal.x", 155.0)
	v.SetDefault("scenario.goal.y", 40.0)
	v.SetDefault("scenario.drift", 1.0)
	v.SetDefault("scenario.step_size", 1.0)
	v.SetDefault("scenario.seed", 42)
	v.SetDefault("scenario.max_steps", 5000)
	v.SetDefault("scenario.policies", []string{
		steering.InertName, steering.FixedHeadingName, steering.GoalSeekingName,
	})

	// -- Output --
	v.SetDefault("output.figure", "last.png")
	v.SetDefault("output.json", "")
	v.SetDefault("output.figure_width", 1600)
	v.SetDefault("output.figure_height", 900)
	v.SetDefault("output.quiver_spacing", 8)
	v.SetDefault("output.include_field", false)

	// -- Viewer --
	v.SetDefault("viewer.scale", 6)
	v.SetDefault("viewer.tps", 60)
	v.SetDefault("viewer.playback_tps", 30)
	v.SetDefault("viewer.hud_width", 260)

	// -- Sweep --
	v.SetDefault("sweep.runs", 64)
	v.SetDefault("sweep.workers", 0)
	v.SetDefault("sweep.first_seed", 1)
}

// NewDefaultConfig returns the configuration with nothing but defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// NewViper returns a viper instance with defaults, environment overrides and
// the config file at path merged in. An empty path searches the working
// directory for boatsim.yaml and tolerates its absence; an explicit path must
// exist.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("boatsim")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return v, nil
}

// NewConfigFromViper decodes and validates v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Load is NewViper followed by NewConfigFromViper.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return invalid("logger.format must be console or json, got %q", c.Logger.Format)
	}
	if err := c.Scenario.Validate(); err != nil {
		return err
	}
	if c.Output.FigureWidth <= 0 || c.Output.FigureHeight <= 0 {
		return invalid("output.figure_width and output.figure_height must be positive")
	}
	if c.Output.QuiverSpacing < 1 {
		return invalid("output.quiver_spacing must be >= 1")
	}
	if c.Viewer.Scale < 1 {
		return invalid("viewer.scale must be >= 1")
	}
	if c.Viewer.TPS <= 0 || c.Viewer.PlaybackTPS <= 0 {
		return invalid("viewer.tps and viewer.playback_tps must be positive")
	}
	if c.Viewer.HUDWidth < 0 {
		return invalid("viewer.hud_width must not be negative")
	}
	if c.Sweep.Runs < 1 {
		return invalid("sweep.runs must be >= 1")
	}
	if c.Sweep.Workers < 0 {
		return invalid("sweep.workers must not be negative")
	}
	return nil
}

// Validate checks the scenario section. Generator parameters are checked
// again by current.Generate; doing it here names the offending key.
func (s Scenario) Validate() error {
	if s.Width < 3 {
		return invalid("scenario.width must be >= 3, got %d", s.Width)
	}
	if s.Height < 3 {
		return invalid("scenario.height must be >= 3, got %d", s.Height)
	}
	if math.IsNaN(s.Dispersion) || s.Dispersion < 0 || s.Dispersion >= 1 {
		return invalid("scenario.dispersion must be in [0, 1), got %g", s.Dispersion)
	}
	if !finite(s.MaxSpeed) || s.MaxSpeed < 0 {
		return invalid("scenario.max_speed must be finite and >= 0, got %g", s.MaxSpeed)
	}
	switch current.Normalization(s.Normalization) {
	case current.NormalizeComponent, current.NormalizeMagnitude:
	default:
		return invalid("scenario.normalization must be component or magnitude, got %q", s.Normalization)
	}
	if !core.Finite(s.Start.Vec()) {
		return invalid("scenario.start must be finite")
	}
	if !core.Finite(s.Goal.Vec()) {
		return invalid("scenario.goal must be finite")
	}
	if !finite(s.Drift) {
		return invalid("scenario.drift must be finite")
	}
	if !finite(s.StepSize) || s.StepSize < 0 {
		return invalid("scenario.step_size must be finite and >= 0, got %g", s.StepSize)
	}
	if s.MaxSteps < 1 {
		return invalid("scenario.max_steps must be >= 1, got %d", s.MaxSteps)
	}
	if len(s.Policies) == 0 {
		return invalid("scenario.policies must name at least one policy")
	}
	for _, name := range s.Policies {
		if _, err := steering.Lookup(name); err != nil {
			return invalid("scenario.policies: %v (known: %s)", err, strings.Join(steering.Names(), ", "))
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
