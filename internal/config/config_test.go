package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"catalogo/internal/config"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	cfg := config.FromViper(v)

	assert.Equal(t, ":8080", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "catalogo.events", cfg.RabbitMQ.Exchange)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.Enabled())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_ADMIN_PASSWORD_HASH", "$2a$10$abc")
	t.Setenv("AUTH_TOKEN_TTL", "30m")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.Enabled())
}
