package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/events"
	"catalog/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func newConsumeCommand(opts *rootOptions) *cobra.Command {
	var bindingKey string

	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Log change events published by the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loggers, err := opts.load()
			if err != nil {
				return err
			}
			defer loggers.Close()

			if cfg.AMQP.URL == "" {
				return errors.New("amqp.url is not configured")
			}
			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQP.URL, Exchange: cfg.AMQP.Exchange, Logger: loggers.App})
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Consume(cfg.AMQP.Queue, bindingKey, logEvent(loggers.App)); err != nil {
				return err
			}
			loggers.App.Info("consuming change events",
				zap.String("exchange", cfg.AMQP.Exchange),
				zap.String("queue", cfg.AMQP.Queue),
				zap.String("binding_key", bindingKey))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&bindingKey, "binding-key", "#", "Routing key pattern, e.g. product.* or contact.deleted")
	return cmd
}

// logEvent returns a delivery handler that logs each change event.
// Malformed messages are rejected.
func logEvent(log *zap.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event events.Event
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("malformed event %d: %w", msg.DeliveryTag, err)
		}
		log.Info("change event received",
			zap.String("type", event.Type),
			zap.String("key", event.Key),
			zap.Time("occurred_at", event.OccurredAt))
		return nil
	}
}
