// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open accepts "sqlite" (modernc.org/sqlite, the default) or "postgres"
(github.com/lib/pq) and pings the connection before returning it:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: Election metadata and lifecycle state
  - candidate: Candidates registered per election
  - ballot: One ballot per voter key per election
  - ranking: Ordered preferences of a ballot
  - result_snapshot: Immutable evaluation results

# Relationships

	election 1──* candidate
	election 1──* ballot
	ballot 1──* ranking
	election 1──* result_snapshot

Foreign keys declare ON DELETE CASCADE; the store also deletes children
explicitly because SQLite only enforces them when asked to.
*/
package db
