package server

import (
	"errors"
	"fmt"

	"catalog/internal/config"
	"catalog/internal/events"
	"catalog/internal/logging"
	"catalog/internal/metrics"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/database"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const metricsNamespace = "catalog"

// Store bundles the repositories for the configured database driver.
type Store struct {
	// DB is nil for the memory driver.
	DB       *gorm.DB
	Products repositories.ProductRepository
	Contacts repositories.ContactRepository
	Users    repositories.UserRepository
}

// OpenStore opens the entity store described by cfg. With the memory driver
// the repositories live in process and nothing is persisted.
func OpenStore(cfg config.DatabaseConfig, log *zap.Logger) (*Store, error) {
	if cfg.Driver == "memory" {
		return &Store{
			Products: repositories.NewMockProductRepository(),
			Contacts: repositories.NewMockContactRepository(),
			Users:    repositories.NewMockUserRepository(),
		}, nil
	}

	db, err := database.Open(database.Config{
		Driver:          cfg.Driver,
		DSN:             cfg.DSN,
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, log)
	if err != nil {
		return nil, err
	}
	return &Store{
		DB:       db,
		Products: repositories.NewGORMProductRepository(db),
		Contacts: repositories.NewGORMContactRepository(db),
		Users:    repositories.NewGORMUserRepository(db),
	}, nil
}

// Migrate creates the tables. It fails for the memory driver.
func (s *Store) Migrate() error {
	if s.DB == nil {
		return errors.New("the memory driver has no schema to migrate")
	}
	return database.Migrate(s.DB)
}

// Close releases the database connection, if any.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	return database.Close(s.DB)
}

// App is a fully wired service ready to listen.
type App struct {
	Fiber   *fiber.App
	Store   *Store
	Metrics *metrics.HTTPMetrics

	broker *rabbitmq.Client
}

// Build wires the store, event publisher, services and HTTP app from cfg.
// An unreachable broker only disables event publishing.
func Build(cfg *config.Config, loggers *logging.Loggers) (*App, error) {
	if loggers == nil {
		loggers = logging.NewNop()
	}

	store, err := OpenStore(cfg.Database, loggers.App)
	if err != nil {
		return nil, err
	}
	if store.DB != nil && cfg.Database.AutoMigrate {
		if err := store.Migrate(); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	a := &App{Store: store}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQP.URL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQP.URL, Exchange: cfg.AMQP.Exchange, Logger: loggers.App})
		if err != nil {
			loggers.App.Warn("event publishing disabled", zap.Error(err))
		} else {
			a.broker = client
			publisher = events.NewAMQPPublisher(client)
		}
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.NewHTTPMetrics(metricsNamespace)
	}

	authService := services.NewAuthService(store.Users, services.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTokenLifetime,
		RefreshTTL: cfg.Auth.RefreshTokenLifetime,
	})

	a.Fiber = New(cfg, Deps{
		Products: services.NewProductService(store.Products, publisher, loggers.App),
		Contacts: services.NewContactService(store.Contacts, publisher, loggers.App),
		Auth:     authService,
		Loggers:  loggers,
		Metrics:  a.Metrics,
	})
	return a, nil
}

// Close releases the broker connection and the store.
func (a *App) Close() error {
	var errs []error
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			errs = append(errs, fmt.Errorf("broker: %w", err))
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	return errors.Join(errs...)
}
