// Package config loads the service configuration from defaults, an optional
// config file, a .env file and the process environment, in increasing order
// of precedence.
package config

import "time"

// DefaultJWTSecret is the development signing key. serve warns when it is in use.
const DefaultJWTSecret = "insecure-dev-secret-change-me-in-production"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	APIPrefix       string        `mapstructure:"api_prefix" validate:"required,startswith=/"`
	AppName         string        `mapstructure:"app_name" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects and tunes the entity store. The memory driver keeps
// everything in process and ignores the remaining fields.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver" validate:"required,oneof=sqlite postgres memory"`
	DSN             string        `mapstructure:"dsn" validate:"required_unless=Driver memory"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// AuthConfig contains the bearer token settings.
type AuthConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	AccessTokenLifetime  time.Duration `mapstructure:"access_token_lifetime" validate:"gt=0"`
	RefreshTokenLifetime time.Duration `mapstructure:"refresh_token_lifetime" validate:"gtfield=AccessTokenLifetime"`
	HeaderTypes          []string      `mapstructure:"header_types" validate:"min=1,dive,required"`
}

// LogConfig controls the zap loggers. An empty Dir disables log files.
type LogConfig struct {
	Level   string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Dir     string `mapstructure:"dir"`
	Console bool   `mapstructure:"console"`
}

// AMQPConfig configures change event publishing. An empty URL disables it.
type AMQPConfig struct {
	URL      string `mapstructure:"url" validate:"omitempty,url"`
	Exchange string `mapstructure:"exchange" validate:"required"`
	Queue    string `mapstructure:"queue" validate:"required"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}
