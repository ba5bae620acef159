// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - JWTSecret: Token signing secret (required)
  - TokenTTL: Bearer token lifetime (default: 30 minutes)
  - SeedDir: Optional CSV directory imported on startup

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-jwt-secret Token signing secret
	-token-ttl  Token lifetime in minutes
	-seed       Seed data directory

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	JWT_SECRET        → -jwt-secret
	TOKEN_TTL_MINUTES → -token-ttl
	SEED_DIR          → -seed

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so a local .env can supply any of these.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided

The signing secret is loaded once here and passed explicitly into the auth
functions; no other package reads it from the environment.
*/
package cliparse
