package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog/internal/config"
	"catalog/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start the HTTP API, migrating the database first when database.auto_migrate is set. Stops gracefully on SIGINT or SIGTERM.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggers, err := opts.load()
			if err != nil {
				return err
			}
			defer loggers.Close()

			if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
				loggers.App.Warn("using the development JWT secret; set AUTH_JWT_SECRET in production")
			}

			app, err := server.Build(cfg, loggers)
			if err != nil {
				loggers.App.Error("failed to build application", zap.Error(err))
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					loggers.App.Warn("error during shutdown", zap.Error(err))
				}
			}()

			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app, ln, cfg.Server.ShutdownTimeout, loggers.App)
		},
	}
}

// serve runs app on ln until ctx is done, then shuts it down within timeout.
func serve(ctx context.Context, app *server.App, ln net.Listener, timeout time.Duration, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Fiber.Listener(ln)
	}()
	log.Info("server listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.Fiber.ShutdownWithTimeout(timeout); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	log.Info("server gracefully stopped")
	return nil
}
