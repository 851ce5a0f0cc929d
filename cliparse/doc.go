// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct and the command arguments left after the
global flags:

	cfg, args, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - DatabaseURL: Database connection string (default: file:quickly-elect.db for sqlite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - VoterKeySalt: Secret for voter key HMAC (required)
  - User: Acting user name (required)
  - Output: text or json (default: text)
  - LogLevel: slog level (default: info)

# CLI Flags

	-d            Database URL
	-t            Database type
	-u            Acting user
	-o            Output format
	-log-level    Log level
	-voter-salt   Voter key salt
	-env          Environment file (default: .env)

# Environment Variables

Flags fall back to environment variables. Variables from the -env file are
loaded with godotenv first but never override variables already set:

	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ELECT_USER      → -u (then USER)
	OUTPUT          → -o
	LOG_LEVEL       → -log-level
	VOTER_KEY_SALT  → -voter-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - VOTER_KEY_SALT must be provided
  - a user must be known
  - postgres needs DATABASE_URL
*/
package cliparse
