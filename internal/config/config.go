// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrMisconfiguredSecret is returned when the signing secret is missing or unusable.
// It is a startup error and must never be downgraded to "no session" at request time.
var ErrMisconfiguredSecret = errors.New("misconfigured signing secret")

// ErrDefaultAdminPassword is returned outside development when the seeded admin
// would keep the shipped example password.
var ErrDefaultAdminPassword = errors.New("default admin password")

// DefaultAdminPassword is the example password seeded in development.
const DefaultAdminPassword = "Admin123!"

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-nextauth-secret-goes-here-32b",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"KEDJORA_DB_PATH" envDefault:"./data/kedjora.db"`
	SessionSecret string `env:"KEDJORA_SESSION_SECRET"`
	ServerHost    string `env:"KEDJORA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"KEDJORA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"KEDJORA_ENV" envDefault:"development"`
	LogLevel      string `env:"KEDJORA_LOG_LEVEL" envDefault:"info"`

	// TrustProxy honours X-Forwarded-Proto when building absolute URLs.
	TrustProxy bool `env:"KEDJORA_TRUST_PROXY" envDefault:"false"`

	// Session token
	SessionCookie string        `env:"KEDJORA_SESSION_COOKIE" envDefault:"kedjora_session"`
	SessionTTL    time.Duration `env:"KEDJORA_SESSION_TTL" envDefault:"720h"`
	AuthTimeout   time.Duration `env:"KEDJORA_AUTH_TIMEOUT" envDefault:"5s"`

	// Cache configuration
	RedisURL     string `env:"KEDJORA_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"KEDJORA_CACHE_PREFIX" envDefault:"kedjora:"` // Redis key prefix
	CacheTTL     int    `env:"KEDJORA_CACHE_TTL" envDefault:"300"`         // Default cache TTL in seconds
	CacheMaxSize int    `env:"KEDJORA_CACHE_MAX_SIZE" envDefault:"1000"`   // Max memory cache entries

	// Seeding configuration
	DoSeed        bool   `env:"KEDJORA_DO_SEED" envDefault:"false"`
	AdminEmail    string `env:"KEDJORA_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"KEDJORA_ADMIN_PASSWORD" envDefault:"Admin123!"`
	AdminName     string `env:"KEDJORA_ADMIN_NAME" envDefault:"Admin"`

	EventRetentionDays int `env:"KEDJORA_EVENT_RETENTION_DAYS" envDefault:"90"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// HS256 keys shorter than the hash output weaken the signature.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
// A missing or weak signing secret is reported as ErrMisconfiguredSecret.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := ValidateSecret(cfg.SessionSecret); err != nil {
		return nil, err
	}

	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("KEDJORA_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.AuthTimeout <= 0 {
		return nil, fmt.Errorf("KEDJORA_AUTH_TIMEOUT must be positive, got %s", cfg.AuthTimeout)
	}

	if cfg.AdminPassword == DefaultAdminPassword {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("%w: set KEDJORA_ADMIN_PASSWORD when KEDJORA_ENV is %q",
				ErrDefaultAdminPassword, cfg.Env)
		}
		slog.Warn("KEDJORA_ADMIN_PASSWORD is the default example password; change it before deploying")
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("KEDJORA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// ValidateSecret checks that a signing secret is present, long enough and not a known example value.
func ValidateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: KEDJORA_SESSION_SECRET is required; "+
			"generate one with: openssl rand -base64 32", ErrMisconfiguredSecret)
	}

	if len(secret) < MinSessionSecretLength {
		return fmt.Errorf("%w: KEDJORA_SESSION_SECRET must be at least %d bytes long, got %d bytes",
			ErrMisconfiguredSecret, MinSessionSecretLength, len(secret))
	}

	for _, weak := range knownWeakSecrets {
		if secret == weak {
			return fmt.Errorf("%w: KEDJORA_SESSION_SECRET is a known default value and must not be used",
				ErrMisconfiguredSecret)
		}
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
