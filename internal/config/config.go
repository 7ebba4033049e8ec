// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PORTFOLIO_DB_PATH" envDefault:"./data/portfolio.db"`
	ServerHost string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"3001"`
	Env        string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`

	// JWT configuration
	JWTSecret string        `env:"PORTFOLIO_JWT_SECRET,required"`
	JWTExpiry time.Duration `env:"PORTFOLIO_JWT_EXPIRY" envDefault:"168h"` // 7 days

	// CORS configuration
	FrontendURL string `env:"PORTFOLIO_FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Upload configuration
	UploadsDir    string `env:"PORTFOLIO_UPLOADS_DIR" envDefault:"./uploads"`
	UploadMaxSize int64  `env:"PORTFOLIO_UPLOAD_MAX_SIZE" envDefault:"5242880"` // 5 MB

	// Seeding configuration
	AdminUsername string `env:"PORTFOLIO_ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"PORTFOLIO_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"PORTFOLIO_ADMIN_PASSWORD" envDefault:"admin123"`
	DoSeed        bool   `env:"PORTFOLIO_DO_SEED" envDefault:"false"` // Import demo content
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MinJWTSecretLength is the minimum required length for the JWT signing
// secret. HS256 needs at least 32 bytes of key material.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate JWT secret length
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("PORTFOLIO_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("PORTFOLIO_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("PORTFOLIO_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.UploadMaxSize <= 0 {
		return nil, fmt.Errorf("PORTFOLIO_UPLOAD_MAX_SIZE must be positive, got %d", cfg.UploadMaxSize)
	}

	return cfg, nil
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
