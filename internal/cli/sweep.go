package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"boatsim/internal/observability"
	"boatsim/internal/sweep"
)

func newSweepCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the scenario over many seeds and tally policy outcomes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := opts.cfg.Sweep
			logger := observability.GetLogger()
			logger.Info("Sweep starting",
				zap.Int("runs", sc.Runs),
				zap.Int("workers", sc.EffectiveWorkers()),
				zap.Int64("first_seed", sc.FirstSeed),
			)

			report, err := sweep.Run(cmd.Context(), opts.cfg.Scenario, sweep.Options{
				Runs:      sc.Runs,
				Workers:   sc.EffectiveWorkers(),
				FirstSeed: sc.FirstSeed,
			})
			if report.Runs > 0 {
				if werr := report.WriteTable(cmd.OutOrStdout()); werr != nil {
					return werr
				}
			}
			if err != nil {
				return err
			}
			logger.Info("Sweep finished", zap.Duration("elapsed", report.Elapsed))
			return nil
		},
	}
	addScenarioFlags(cmd.Flags())
	cmd.Flags().Int("runs", 0, "number of seeds to simulate")
	cmd.Flags().Int("workers", 0, "worker goroutines (0 means one per CPU)")
	cmd.Flags().Int64("first-seed", 0, "seed of the first run")
	return cmd
}
