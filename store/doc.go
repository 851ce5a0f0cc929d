// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists elections and moves vote data in and out of files.

# SQL Store

Store wraps a *sql.DB created by db.Open. Queries use $N placeholders,
which both lib/pq and modernc.org/sqlite accept:

	s := store.New(conn)
	e, err := s.GetElection("board")
	election, err := s.LoadElection(e) // *stv.Election with every ballot replayed

Missing rows return errors wrapping ErrNotFound; duplicate titles and
candidates wrap ErrDuplicate. Multi-row writes run in one transaction.

# Vote Data

VoteData is the flat persisted form of an election:

	{"candidates": ["a", "b"], "seats": 1, "votes": {"<voter key>": ["b", "a"]}}

It is written as JSON or YAML, chosen by file extension:

	err := store.SaveFile("board.yaml", election)
	election, err := store.LoadFile("board.yaml")

Decoding rejects missing fields, unknown fields, values of the wrong type and
rankings that are not valid ballots, all wrapping ErrMalformed. Loading
replays each ranking, so a reloaded election counts exactly like the original.
*/
package store
