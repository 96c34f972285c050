package cli

import (
	"github.com/spf13/cobra"

	"boatsim/internal/app"
)

func newViewCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Simulate and replay the run in a window (requires -tags ebiten).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := simulate(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			return app.Run(res, opts.cfg.Viewer, opts.cfg.Output.QuiverSpacing)
		},
	}
	addScenarioFlags(cmd.Flags())
	cmd.Flags().Int("scale", 0, "screen pixels per cell")
	cmd.Flags().Int("playback-tps", 0, "trajectory steps revealed per second")
	cmd.Flags().Int("quiver-spacing", 0, "cells between current arrows")
	return cmd
}
