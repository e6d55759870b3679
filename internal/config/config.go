package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	AppPort     string
	GatewayPort string

	// CookieSecret signs session cookie values. TokenSecret signs
	// bearer tokens and is the only value shared with the gateway.
	CookieSecret string
	TokenSecret  string

	TokenTTL   time.Duration
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

var (
	ErrMissingTokenSecret  = errors.New("config: TOKEN_SECRET must be set")
	ErrMissingCookieSecret = errors.New("config: COOKIE_SECRET must be set")
)

func Load() (Config, error) {

	cfg := Config{

		AppPort:     getenv("APP_PORT", "3001"),
		GatewayPort: getenv("GATEWAY_PORT", "3002"),

		CookieSecret: os.Getenv("COOKIE_SECRET"),
		TokenSecret:  os.Getenv("TOKEN_SECRET"),

		TokenTTL:   getduration("TOKEN_TTL", 10*time.Minute),
		SessionTTL: getduration("SESSION_TTL", 24*time.Hour),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	// Secrets are injected, never defaulted. The cookie secret is
	// only required by the auth server, which checks it at wiring
	// time; the gateway runs on the token secret alone.
	if cfg.TokenSecret == "" {
		return Config{}, ErrMissingTokenSecret
	}

	return cfg, nil

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getduration reads a Go duration string (e.g. "10m").
// "0" is valid and disables the TTL it configures.
func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
