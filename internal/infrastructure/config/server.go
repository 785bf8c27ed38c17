package config

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	// Host to bind the HTTP server
	Host string `mapstructure:"host"`

	// Port for the HTTP server
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`

	// Per-client request rate limiting
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds request rate limiting configuration
type RateLimitConfig struct {
	// Requests allowed per second
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst capacity
	Burst int `mapstructure:"burst"`
}
