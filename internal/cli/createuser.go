package cli

import (
	"errors"
	"fmt"

	"catalog/internal/server"
	"catalog/internal/services"

	"github.com/spf13/cobra"
)

func newCreateUserCommand(opts *rootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create an active user that can obtain tokens",
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
			if store.DB == nil {
				return errors.New("createuser needs a persistent database driver")
			}
			if cfg.Database.AutoMigrate {
				if err := store.Migrate(); err != nil {
					return err
				}
			}

			auth := services.NewAuthService(store.Users, services.TokenConfig{Secret: cfg.Auth.JWTSecret})
			user, err := auth.RegisterUser(username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&username, "username", "u", "", "Username of the new user")
	fs.StringVarP(&password, "password", "p", "", "Password of the new user")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
