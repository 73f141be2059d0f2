// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Feedback Hub API server.

Feedback Hub collects free-text feedback that users can vote on, serves
admin-authored survey forms, and gives administrators aggregate analytics
and a submission history.

# Starting the Server

With SQLite (the default) only a file path and a signing secret are needed:

	DATABASE_URL=feedback.db JWT_SECRET=change-me go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -p 4000

A YAML file can be given with -c or CONFIG_FILE. A .env file in the working
directory is loaded when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): HMAC secret for bearer tokens

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TOKEN_TTL (--token-ttl): Token lifetime (default: 24h)
  - CORS_ALLOWED_ORIGINS: Comma-separated origins (default: *)

# Architecture

  - handlers: HTTP request handlers (auth, feedback, forms, questions, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, bearer auth, JSON helpers
  - models: Request/response types
  - auth: Password hashing and JWT issue/verify
  - db: Connection setup and embedded migrations
  - cliparse: Configuration parsing

Migrations run on every start and are a no-op when the schema is current.
SIGINT or SIGTERM drains in-flight requests for up to ten seconds.
*/
package main
