// internal/cli/validate.go

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"oncall-scheduler/internal/config"
	"oncall-scheduler/internal/schedule"
	"oncall-scheduler/internal/solver"
)

func newValidateCmd(logger func() *zap.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and report per-block capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			plan, err := buildPlan(cfg)
			if err != nil {
				return err
			}

			sched, err := schedule.New(solver.NewBacktracking())
			if err != nil {
				return err
			}
			diag, err := sched.CheckCapacity(plan)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderCapacity(plan, diag))
			if err != nil {
				var capErr *schedule.CapacityError
				if errors.As(err, &capErr) {
					log.Error("validation failed", zap.Error(capErr))
				}
				return err
			}

			fmt.Fprintln(out, okStyle.Render("Configuration is valid."))
			log.Info("configuration valid",
				zap.Int("engineers", len(plan.Engineers)),
				zap.Int("blocks", plan.NumBlocks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")
	return cmd
}
