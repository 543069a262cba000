// Package config loads application settings from the environment and optional env files.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups every setting of the application.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig holds the HTTP server settings.
type HTTPConfig struct {
	Port        string // listen address, e.g. ":8080"
	PublicDir   string // static frontend assets; skipped when the directory is missing
	CORSOrigins string
}

// DBConfig selects the record store.
type DBConfig struct {
	Driver       string // sqlite or postgres
	DSN          string
	MaxOpenConns int
	Quiet        bool // silence the SQL logger
}

// RabbitMQConfig configures lifecycle event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// AuthConfig enables write protection when both the secret and the password hash are set.
type AuthConfig struct {
	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration
}

// Enabled reports whether mutating routes require a token.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

// Load reads .env or config.env when present; environment variables take precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig() // optional

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return FromViper(v), nil
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Name:     v.GetString("APP_NAME"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Port:        v.GetString("APP_PORT"),
			PublicDir:   v.GetString("PUBLIC_DIR"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
		DB: DBConfig{
			Driver:       v.GetString("DB_DRIVER"),
			DSN:          v.GetString("DATABASE_DSN"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			Quiet:        v.GetBool("DB_QUIET"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
			Queue:    v.GetString("RABBITMQ_QUEUE"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("AUTH_JWT_SECRET"),
			AdminPasswordHash: v.GetString("AUTH_ADMIN_PASSWORD_HASH"),
			TokenTTL:          v.GetDuration("AUTH_TOKEN_TTL"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "catalogo")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("PUBLIC_DIR", "./public")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "catalogo.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 0)
	v.SetDefault("DB_QUIET", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "catalogo.events")
	v.SetDefault("RABBITMQ_QUEUE", "catalogo_audit")
	v.SetDefault("AUTH_TOKEN_TTL", 24*time.Hour)
}

// SetDefaults applies the default values to v; used by tests building their own viper.
func SetDefaults(v *viper.Viper) { setDefaults(v) }
