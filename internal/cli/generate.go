// internal/cli/generate.go

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"oncall-scheduler/internal/availability"
	"oncall-scheduler/internal/config"
	"oncall-scheduler/internal/export"
	"oncall-scheduler/internal/logging"
	"oncall-scheduler/internal/rules"
	"oncall-scheduler/internal/schedule"
	"oncall-scheduler/internal/solver"
)

func newGenerateCmd(logger func() *zap.Logger) *cobra.Command {
	var (
		configPath string
		outputDir  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the on-call schedule and write the configured exports",
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

			sched, err := schedule.New(solver.NewBacktracking(),
				schedule.WithObserver(logging.NewScheduleObserver(log)),
				schedule.WithBudget(cfg.SolverBudget()))
			if err != nil {
				return err
			}
			blocks, err := sched.Run(plan)
			if err != nil {
				return err
			}

			events := export.Expand(blocks, plan.Roles)
			if err := writeExports(cfg, outputDir, events); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderRoster(blocks, plan.Roles))
			log.Info("schedule generated",
				zap.Int("blocks", len(blocks)),
				zap.Int("events", len(events)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for generated files")
	return cmd
}

// buildPlan assembles the scheduling inputs from configuration plus the
// availability CSV, when one is configured.
func buildPlan(cfg *config.Config) (schedule.Plan, error) {
	roles, err := cfg.RosterRoles()
	if err != nil {
		return schedule.Plan{}, err
	}
	selection, err := rules.ParseSelection(cfg.Rules)
	if err != nil {
		return schedule.Plan{}, err
	}
	absences, err := loadAbsences(cfg)
	if err != nil {
		return schedule.Plan{}, err
	}
	return schedule.Plan{
		Engineers:     cfg.Team,
		Roles:         roles,
		Start:         cfg.StartDate(),
		NumBlocks:     cfg.Schedule.NumBlocks,
		WeeksPerBlock: cfg.Schedule.WeeksPerBlock,
		MaxShifts:     cfg.Constraints.MaxShiftsPerEngineer,
		MaxWeekends:   cfg.Constraints.MaxWeekendsPerEngineer,
		WeekendRole:   cfg.Constraints.WeekendRole,
		Rules:         selection,
		Absences:      absences,
	}, nil
}

func loadAbsences(cfg *config.Config) ([]availability.Absence, error) {
	if cfg.Files.AvailabilityCSV == "" {
		return nil, nil
	}
	f, err := os.Open(cfg.Files.AvailabilityCSV)
	if err != nil {
		return nil, fmt.Errorf("open availability csv: %w", err)
	}
	defer f.Close()
	return availability.ParseAbsenceCSV(f)
}

func writeExports(cfg *config.Config, outputDir string, events []export.Event) error {
	if len(cfg.Files.ExportFormats) == 0 {
		return nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outputDir, err)
	}
	for _, format := range cfg.Files.ExportFormats {
		var (
			path  string
			write func(f *os.File) error
		)
		switch format {
		case "csv":
			path = filepath.Join(outputDir, "schedule.csv")
			write = func(f *os.File) error { return export.WriteCSV(f, events) }
		case "ical":
			path = filepath.Join(outputDir, "schedule.ics")
			write = func(f *os.File) error { return export.WriteICal(f, events) }
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}
	return nil
}
