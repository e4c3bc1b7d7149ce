// Package apiclient talks to the backend JSON API and caches query results.
package apiclient

import (
	"time"

	"github.com/louisbranch/frontpage/internal/platform/config"
	"github.com/louisbranch/frontpage/internal/platform/timeouts"
)

// Config holds backend API and query cache settings.
type Config struct {
	BaseURL          string        `env:"FRONTPAGE_API_BASE_URL" envDefault:"http://localhost:8081" validate:"required,http_url"`
	Token            string        `env:"FRONTPAGE_API_TOKEN"`
	Timeout          time.Duration `env:"FRONTPAGE_API_TIMEOUT" envDefault:"5s" validate:"gt=0"`
	MaxResponseBytes int64         `env:"FRONTPAGE_API_MAX_RESPONSE_BYTES" envDefault:"1048576" validate:"gt=0"`
	StaleTime        time.Duration `env:"FRONTPAGE_QUERY_STALE_TIME" envDefault:"30s" validate:"gte=0"`
	RetryAttempts    int           `env:"FRONTPAGE_QUERY_RETRY_ATTEMPTS" envDefault:"3" validate:"gte=1"`
	RetryInterval    time.Duration `env:"FRONTPAGE_QUERY_RETRY_INTERVAL" envDefault:"200ms" validate:"gte=0"`
}

// DefaultConfig returns the settings used when no environment is provided.
func DefaultConfig() Config {
	return Config{
		BaseURL:          "http://localhost:8081",
		Timeout:          timeouts.BackendRequest,
		MaxResponseBytes: 1 << 20,
		StaleTime:        30 * time.Second,
		RetryAttempts:    3,
		RetryInterval:    200 * time.Millisecond,
	}
}

// Validate checks the config with the shared validator.
func (c Config) Validate() error {
	return config.Validate(c)
}

// RetryPolicy returns the query retry policy described by c.
func (c Config) RetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     c.RetryAttempts,
		InitialInterval: c.RetryInterval,
		MaxInterval:     4 * c.RetryInterval,
	}
}
