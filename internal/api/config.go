package api

import (
	"fmt"
	"os"
	"time"
)

// Config holds everything needed to talk to the platform backend.
type Config struct {
	// BaseURL is the root of the REST API, e.g. "https://api.kurso.app".
	BaseURL string

	// Token is the bearer token identifying the learner.
	Token string

	// UserID is the learner's platform identifier.
	UserID string

	// Timeout bounds a single HTTP request. The quiz countdown is the
	// only application-level deadline; this is transport hygiene.
	Timeout time.Duration

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient fetch failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 15 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling
// back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if u := os.Getenv("KURSO_API_URL"); u != "" {
		cfg.BaseURL = u
	}
	if t := os.Getenv("KURSO_TOKEN"); t != "" {
		cfg.Token = t
	}
	if id := os.Getenv("KURSO_USER_ID"); id != "" {
		cfg.UserID = id
	}
	if d := os.Getenv("KURSO_HTTP_TIMEOUT"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			cfg.Timeout = parsed
		}
	}

	return cfg
}

// Validate checks that the required fields are set.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("KURSO_API_URL is required")
	}
	if c.UserID == "" {
		return fmt.Errorf("KURSO_USER_ID is required")
	}
	return nil
}
