// Copyright (c) 2026 Inkstone. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file, if
present, is loaded first via 'joho/godotenv' so development machines do not need
to export variables by hand.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported values for [Config.DatabaseDriver].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// minSessionSecretLength is the minimum byte length accepted for SESSION_SECRET.
// Session tokens are keyed with HMAC-SHA256, so the secret must carry enough
// entropy to make offline guessing pointless.
const minSessionSecretLength = 32

// # Configuration Schema

// Config holds all runtime configuration for the Inkstone web server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database. SQLite is the default so a checkout runs with zero
	// external services; production deployments set DATABASE_DRIVER=postgres.
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURL    string `env:"DATABASE_URL"`
	SQLitePath     string `env:"SQLITE_PATH"     envDefault:"./inkstone.db"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	// Driver-specific migrations live in subdirectories named after the driver.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis), backing server-side sessions
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret keys the HMAC used to derive session storage keys from
	// browser-held tokens.
	SessionSecret string `env:"SESSION_SECRET,required"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A .env file in the working directory is merged into the environment first;
// its absence is not an error.
func Load() (*Config, error) {

	// Best effort: real environment variables always win over .env entries.
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate enforces the cross-field rules that struct tags cannot express.
func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATABASE_DRIVER is %q", DriverPostgres)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when DATABASE_DRIVER is %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (expected %q or %q)",
			c.DatabaseDriver, DriverPostgres, DriverSQLite)
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d bytes", minSessionSecretLength)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
