// Package commands provides the mrp-policy CLI commands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/config"
	"github.com/vsinha/mrp-policy/pkg/infrastructure/logging"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags "-X ...commands.Version=..."
var Version = "dev"

// app holds the state shared by every subcommand once the root command's
// persistent flags have been processed.
type app struct {
	cfgFile  string
	logLevel string
	verbose  bool

	conf   *config.Configuration
	logger *zap.Logger
}

// NewRootCommand builds the mrp-policy command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "mrp-policy",
		Short: "Evaluate MRP negative-inventory planning policy",
		Long: `mrp-policy decides when a component's projected inventory requires a
planned order.

Stock-driven components (negative inventory not allowed) trigger whenever the
projection falls below safety stock. Demand-driven components trigger only
once the projection would go negative.

Examples:
  mrp-policy evaluate --projected 40 --safety-stock 50
  mrp-policy evaluate --projected -5 --mrp-type MTO
  mrp-policy plan --items items.csv --demands demands.csv --inventory inventory.csv
  mrp-policy import --items items.csv --out components.hcl`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./mrp-policy.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newEvaluateCommand(a))
	root.AddCommand(newPlanCommand(a))
	root.AddCommand(newImportCommand(a))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) initialize(cmd *cobra.Command, args []string) error {
	conf, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		conf.Logging.Level = a.logLevel
	}
	if a.verbose && a.logLevel == "" {
		conf.Logging.Level = "debug"
	}

	logger, err := logging.New(conf.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.conf = conf
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mrp-policy version %s\n", Version)
		},
	}
}
