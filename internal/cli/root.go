// internal/cli/root.go
//
// Cobra command tree for the oncall CLI. Subcommands return errors; main
// translates any failure into exit code 1.

package cli

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"oncall-scheduler/internal/logging"
)

// NewRootCmd builds the CLI with generate and validate subcommands.
func NewRootCmd(version string) *cobra.Command {
	var (
		logLevel  string
		logFormat string
		logger    *zap.Logger
	)

	cmd := &cobra.Command{
		Use:           "oncall",
		Short:         "oncall — rotating on-call roster generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, logFormat)
			if err != nil {
				return err
			}
			logger = l.With(zap.String("run_id", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")

	loggerFn := func() *zap.Logger { return logger }
	cmd.AddCommand(newGenerateCmd(loggerFn))
	cmd.AddCommand(newValidateCmd(loggerFn))

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}
