// Package cli implements the catalog command line: serve, migrate,
// createuser and consume.
package cli

import (
	"fmt"

	"catalog/internal/config"
	"catalog/internal/logging"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

// load reads the configuration and builds the loggers it describes.
func (o *rootOptions) load() (*config.Config, *logging.Loggers, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	loggers, err := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Dir:     cfg.Log.Dir,
		Console: cfg.Log.Console,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return cfg, loggers, nil
}

// NewRootCommand builds the catalog command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "catalog",
		Short:         "Products and contacts API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "Path to a config file (yaml, json or toml)")

	cmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newCreateUserCommand(opts),
		newConsumeCommand(opts),
	)
	return cmd
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
