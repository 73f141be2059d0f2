// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: HMAC secret for session tokens (required)
  - TokenTTL: Lifetime of issued tokens (default: 24h)
  - AllowedOrigins: CORS origins (default: *)

# Sources

Values are merged in this order, later sources winning:

 1. YAML file given by -c or CONFIG_FILE
 2. .env in the working directory
 3. Process environment
 4. CLI flags

# CLI Flags

	-c            YAML config file
	-p            Server port
	-d            Database URL
	-t            Database type
	-jwt-secret   Token signing secret
	-token-ttl    Token lifetime (e.g. 24h)

# Environment Variables

	PORT                  → -p
	DATABASE_URL          → -d
	DATABASE_TYPE         → -t
	JWT_SECRET            → -jwt-secret
	TOKEN_TTL             → -token-ttl
	CORS_ALLOWED_ORIGINS  (comma separated)
*/
package cliparse
