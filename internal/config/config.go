package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthHMACSecret    string
	AuthTokenTTL      time.Duration
	RoleClaimFallback bool

	CORSOrigins []string

	LogLevel  string // debug|info|warn|error
	LogFormat string // text|json

	EnableEventLog bool
}

const devSecret = "supersecret-dev-key"

// LoadDotEnv loads the given env files (".env" when none are named) without
// overriding variables already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

func FromEnv() (Config, error) {
	ttl, err := envDuration("AUTH_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBDSN:             envOr("DB_DSN", ""),
		AuthHMACSecret:    envOr("AUTH_HMAC_SECRET", devSecret),
		AuthTokenTTL:      ttl,
		RoleClaimFallback: envBool("AUTH_ROLE_CLAIM_FALLBACK", true),
		CORSOrigins:       csvOr("CORS_ORIGINS", "http://localhost:3000"),
		LogLevel:          strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(envOr("LOG_FORMAT", "text")),
		EnableEventLog:    envBool("ENABLE_EVENT_LOG", true),
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// UsesDevSecret reports whether tokens are signed with the built-in key.
func (c Config) UsesDevSecret() bool { return c.AuthHMACSecret == devSecret }

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive duration, got %q", k, v)
	}
	return d, nil
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
