package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boatsim/internal/config"
	"boatsim/internal/export"
	"boatsim/internal/observability"
	"boatsim/internal/render"
	"boatsim/internal/scenario"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a field, simulate every policy and write the figure.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := simulate(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			if err := writeOutputs(res, opts.cfg.Output); err != nil {
				return err
			}
			return printOutcomes(cmd.OutOrStdout(), res)
		},
	}
	addScenarioFlags(cmd.Flags())
	fs := cmd.Flags()
	fs.String("figure", "", "PNG figure path; empty string skips it (default from config: last.png)")
	fs.String("json", "", "JSON export path")
	fs.Bool("include-field", false, "include the current components in the JSON export")
	fs.Int("quiver-spacing", 0, "cells between current arrows in the figure")
	return cmd
}

// simulate runs the configured scenario and logs its summary.
func simulate(ctx context.Context, cfg *config.Config) (*scenario.Result, error) {
	res, err := scenario.Run(ctx, cfg.Scenario)
	if err != nil {
		return nil, err
	}
	res.LogSummary(observability.GetLogger())
	return res, nil
}

func writeOutputs(res *scenario.Result, out config.OutputConfig) error {
	logger := observability.GetLogger()
	if out.Figure != "" {
		opts := render.FigureOptions{Width: out.FigureWidth, Height: out.FigureHeight, QuiverSpacing: out.QuiverSpacing}
		if err := render.WriteFigureFile(out.Figure, res, opts); err != nil {
			return err
		}
		logger.Info("Figure written", zap.String("path", out.Figure))
	}
	if out.JSON != "" {
		if err := export.WriteFile(out.JSON, res, export.Options{IncludeField: out.IncludeField}); err != nil {
			return err
		}
		logger.Info("Run exported", zap.String("path", out.JSON))
	}
	return nil
}

func printOutcomes(w io.Writer, res *scenario.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "run %s\n", res.RunID)
	fmt.Fprintf(tw, "policy\toutcome\tsteps\tfinal\tlength\n")
	for _, tr := range res.Ordered() {
		final := tr.Final()
		fmt.Fprintf(tw, "%s\t%s\t%d\t(%.2f, %.2f)\t%.2f\n", tr.Policy, tr.Reason, tr.Steps(), final[0], final[1], tr.Length())
	}
	return tw.Flush()
}
