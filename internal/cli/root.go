// Package cli wires the boatsim commands together.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"boatsim/internal/config"
	"boatsim/internal/observability"
)

// Version is overridden at build time with -ldflags "-X boatsim/internal/cli.Version=...".
var Version = "dev"

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":      "logger.level",
	"log-format":     "logger.format",
	"seed":           "scenario.seed",
	"width":          "scenario.width",
	"height":         "scenario.height",
	"dispersion":     "scenario.dispersion",
	"max-speed":      "scenario.max_speed",
	"normalization":  "scenario.normalization",
	"drift":          "scenario.drift",
	"step-size":      "scenario.step_size",
	"max-steps":      "scenario.max_steps",
	"policies":       "scenario.policies",
	"start-x":        "scenario.start.x",
	"start-y":        "scenario.start.y",
	"goal-x":         "scenario.goal.x",
	"goal-y":         "scenario.goal.y",
	"figure":         "output.figure",
	"json":           "output.json",
	"include-field":  "output.include_field",
	"quiver-spacing": "output.quiver_spacing",
	"scale":          "viewer.scale",
	"playback-tps":   "viewer.playback_tps",
	"runs":           "sweep.runs",
	"workers":        "sweep.workers",
	"first-seed":     "sweep.first_seed",
}

type rootOptions struct {
	cfgFile string
	cfg     *config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "boatsim",
		Short:         "Simulate boats steering through a random current field.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(opts.cfgFile)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Configuration loaded", zap.String("version", Version), zap.String("command", cmd.Name()))
			return nil
		},
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./boatsim.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-format", "", "log format (console, json)")

	root.AddCommand(
		newRunCommand(opts),
		newViewCommand(opts),
		newSweepCommand(opts),
		newPoliciesCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		observability.Sync()
		stop()
		os.Exit(1)
	}
	observability.Sync()
}

// bindFlags lets explicitly set flags override file and environment values.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

// addScenarioFlags registers the flags shared by run, view and sweep. The
// defaults shown are informational; unset flags never override the config.
func addScenarioFlags(fs *pflag.FlagSet) {
	def := config.NewDefaultConfig().Scenario
	fs.Int64("seed", def.Seed, "random seed for the current field")
	fs.Int("width", def.Width, "grid width in cells")
	fs.Int("height", def.Height, "grid height in cells")
	fs.Float64("dispersion", def.Dispersion, "noise amplitude in [0, 1)")
	fs.Float64("max-speed", def.MaxSpeed, "largest current component after normalization")
	fs.String("normalization", def.Normalization, "normalize by largest component or magnitude")
	fs.Float64("drift", def.Drift, "scale applied to the current each step")
	fs.Float64("step-size", def.StepSize, "boat displacement per step")
	fs.Int("max-steps", def.MaxSteps, "step bound per trajectory")
	fs.StringSlice("policies", def.Policies, "steering policies to simulate")
	fs.Float64("start-x", def.Start.X, "start x")
	fs.Float64("start-y", def.Start.Y, "start y")
	fs.Float64("goal-x", def.Goal.X, "goal x")
	fs.Float64("goal-y", def.Goal.Y, "goal y")
}
