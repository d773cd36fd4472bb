package main

import (
	"github.com/dimitrije/signshop-api/internal/config"
	"github.com/dimitrije/signshop-api/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "signshop",
		Short:         "Manage the sign shop template catalog and back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.LoadCLI()
			level := a.cfg.LogLevel
			if a.verbose {
				level = "debug"
			}
			logger, err := logging.New(a.cfg.Env, level)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newTemplatesCmd(a),
		newImagesCmd(a),
		newUsersCmd(a),
	)
	return root
}
