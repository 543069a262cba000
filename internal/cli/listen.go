package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"

	"catalogo/internal/models"
	"catalogo/pkg/rabbitmq"
)

// NewListenCommand creates the listen command.
func NewListenCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Log record events from the broker",
		Long: `Bind the audit queue to the events exchange and log every record event
until interrupted. Requires RABBITMQ_URL.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListen(cmd.Context(), rootOpts)
		},
	}
}

func runListen(ctx context.Context, opts *RootOptions) error {
	cfg := opts.Config.RabbitMQ
	if cfg.URL == "" {
		return errors.New("RABBITMQ_URL is required to listen for record events")
	}

	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:      cfg.URL,
		Exchange: cfg.Exchange,
		Queue:    cfg.Queue,
	}, opts.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return client.ConsumeRecordEvents(ctx, func(msg amqp.Delivery) error {
		return logRecordEvent(opts, msg)
	})
}

func logRecordEvent(opts *RootOptions, msg amqp.Delivery) error {
	var evt models.RecordEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		return fmt.Errorf("failed to decode record event: %w", err)
	}
	opts.Logger.Info().
		Str("routing_key", msg.RoutingKey).
		Str("kind", evt.Kind).
		Str("action", evt.Action).
		Str("id", evt.ID).
		Time("occurred_at", evt.OccurredAt).
		RawJSON("record", recordJSON(evt.Record)).
		Msg("record event")
	return nil
}

func recordJSON(record any) []byte {
	b, err := json.Marshal(record)
	if err != nil {
		return []byte("null")
	}
	return b
}
