// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Elect command line.

Quickly Elect runs multi-seat elections with ranked ballots counted by
Meek's method of Single Transferable Vote.

# Running Commands

Global flags come first, then the command and its arguments:

	VOTER_KEY_SALT=... quickly-elect start board 3

Or with flags:

	quickly-elect -d "postgres://..." -t postgres -u alice vote board bob carol

# Configuration

Required settings:

  - VOTER_KEY_SALT (-voter-salt): Secret for voter key HMAC

Optional settings:

  - DATABASE_URL (-d): Connection string (default: file:quickly-elect.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ELECT_USER (-u): Acting user (default: $USER)
  - OUTPUT (-o): text or json (default: text)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)
  - -env: .env file to load first (default: .env)

# Exit Codes

	0 success
	1 internal error
	2 bad request (usage, invalid choice, malformed vote data)
	3 not found
	4 conflict (duplicate or wrong election status)
	5 not the election owner
	6 tie during evaluation

# Architecture

The command line uses a handler-based architecture with dependency injection:

  - stv: Ballots, interactive sessions and the Meek count
  - handlers: Command handlers (elections, voting, results)
  - router: Command registration and dispatch
  - middleware: Logging and output helpers
  - models: Domain and response types
  - store: SQL persistence and the vote-data file format
  - tui: Terminal ballot
  - auth: ID generation, voter keys and ownership checks
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
