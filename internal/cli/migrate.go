package cli

import (
	"catalog/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggers, err := opts.load()
			if err != nil {
				return err
			}
			defer loggers.Close()

			store, err := server.OpenStore(cfg.Database, loggers.App)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Migrate(); err != nil {
				return err
			}
			loggers.App.Info("database migrated", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
