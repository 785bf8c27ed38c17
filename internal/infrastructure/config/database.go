package config

import "time"

// DatabaseConfig selects and tunes the session store. SQLite is the
// zero-config default; PostgreSQL is the production option.
type DatabaseConfig struct {
	// Connection type: "sqlite" or "postgres"
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// SQLite database file (used when Type is "sqlite")
	Path string `mapstructure:"path"`

	// Full PostgreSQL connection URL; takes precedence over the individual
	// fields below. Hosted environments can inject it as DATABASE_URL.
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig tunes the PostgreSQL connection pool. SQLite is a single file
// and ignores these settings.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
