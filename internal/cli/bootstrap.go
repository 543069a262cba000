package cli

import (
	"gorm.io/gorm"

	"catalogo/internal/database"
	"catalogo/internal/metrics"
	"catalogo/internal/server"
	"catalogo/internal/services"
	"catalogo/internal/validation"
	"catalogo/pkg/rabbitmq"
)

// metricsNamespace prefixes every exported Prometheus series.
const metricsNamespace = "catalogo"

// openStore connects to the configured database and migrates it.
func openStore(opts *RootOptions) (*gorm.DB, error) {
	db, err := database.Open(opts.Config.DB)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	opts.Logger.Info().Str("driver", opts.Config.DB.Driver).Msg("database ready")
	return db, nil
}

// connectBroker returns nil when no broker is configured or it cannot be reached;
// events are best effort and the API works without them.
func connectBroker(opts *RootOptions) *rabbitmq.Client {
	cfg := opts.Config.RabbitMQ
	if cfg.URL == "" {
		opts.Logger.Info().Msg("RABBITMQ_URL not set, record events disabled")
		return nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:      cfg.URL,
		Exchange: cfg.Exchange,
		Queue:    cfg.Queue,
	}, opts.Logger)
	if err != nil {
		opts.Logger.Warn().Err(err).Msg("record events disabled")
		return nil
	}
	return client
}

// buildServices creates the services. broker and m may be nil.
func buildServices(opts *RootOptions, db *gorm.DB, broker *rabbitmq.Client, m *metrics.Metrics) *server.Services {
	deps := services.Dependencies{
		Validate: validation.New(),
		Metrics:  m,
		Logger:   opts.Logger,
	}
	if broker != nil {
		deps.Publisher = broker
	}

	svc := server.NewServices(db, deps)
	if auth := opts.Config.Auth; auth.Enabled() {
		svc.Auth = services.NewAuthService(auth.AdminPasswordHash, auth.JWTSecret, auth.TokenTTL)
		opts.Logger.Info().Dur("token_ttl", auth.TokenTTL).Msg("write routes require a token")
	}
	return svc
}
