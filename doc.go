// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Intake API server.

Intake is a questionnaire platform: users register, authenticate with
bearer tokens, fetch questionnaires whose questions come back in
priority order, and submit answers. Resubmitting a questionnaire
atomically replaces the prior response. Admins review submissions
through aggregate reporting routes.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=intake.db JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Secret for signing bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - TOKEN_TTL_MINUTES (--token-ttl): Bearer token lifetime (default: 30)
  - SEED_DIR (--seed): Directory of catalog CSV exports to import on start
  - ADMIN_USERNAME / ADMIN_PASSWORD: Bootstrap an admin account

A .env file in the working directory is loaded at startup; real
environment variables take precedence.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, questionnaires, responses, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing and token signing
  - db: Driver selection and schema creation
  - seed: CSV catalog import and admin bootstrap
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
