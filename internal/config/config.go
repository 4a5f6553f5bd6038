// internal/config/config.go
//
// Process configuration read from the environment.
//
// Environment variables:
//   PORT=5175                   listen port
//   LOG_LEVEL=info              zerolog level name
//   CLIENT_ORIGIN=http://localhost:3000
//   SESSION_SECRET=...          HS256 key for session tokens
//   SESSION_TTL=30m             idle sessions older than this are closed
//   SWEEP_INTERVAL=1m           how often idle sessions are swept
//   CATALOG_FILE=/path.yaml     optional catalogue override (see internal/catalog)
//
// A `.env` file in the working directory is loaded first when present;
// real environment variables win over it.

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev_secret_change_me"

// Config holds the server settings.
type Config struct {
	Port          string
	LogLevel      string
	ClientOrigin  string
	SessionSecret string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	CatalogFile   string
}

// Load reads `.env` (if any) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment without touching `.env`.
func FromEnv() (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:3000"),
		SessionSecret: getEnv("SESSION_SECRET", devSecret),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
	}
	var err error
	if c.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if c.SweepInterval, err = getDuration("SWEEP_INTERVAL", time.Minute); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DevSecret reports whether the built-in signing key is in use.
func (c Config) DevSecret() bool { return c.SessionSecret == devSecret }

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", k, v)
	}
	return d, nil
}
