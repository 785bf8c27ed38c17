package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrekvist/burgersim/internal/infrastructure/config"
)

func TestSetDefaults(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "burgersim.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Database.Pool.MaxOpen)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 20.0, cfg.Server.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Type = "postgres"
	cfg.Server.Port = 9999

	config.SetDefaults(cfg)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 9999, cfg.Server.Port)
	// Postgres keeps its own defaults for connection fields
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestValidateConfig(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		cfg := &config.Config{}
		config.SetDefaults(cfg)
		require.NoError(t, config.ValidateConfig(cfg))
	})

	t.Run("rejects unknown database type", func(t *testing.T) {
		cfg := &config.Config{}
		config.SetDefaults(cfg)
		cfg.Database.Type = "oracle"
		assert.Error(t, config.ValidateConfig(cfg))
	})

	t.Run("rejects bad log level", func(t *testing.T) {
		cfg := &config.Config{}
		config.SetDefaults(cfg)
		cfg.Logging.Level = "verbose"
		assert.Error(t, config.ValidateConfig(cfg))
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		cfg := &config.Config{}
		config.SetDefaults(cfg)
		cfg.Server.Port = 70000
		assert.Error(t, config.ValidateConfig(cfg))
	})
}

func TestLoadConfigOrDefault_FallsBackOnMissingFile(t *testing.T) {
	cfg := config.LoadConfigOrDefault("/nonexistent/config.yaml")

	require.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Database.Type)
}
