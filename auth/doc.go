// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter keys, identifiers and ownership checks.

# Voter Keys

Ballots are stored under an HMAC-SHA256 of the user name instead of the
name itself:

	key := auth.HashVoterKey(user, cfg.VoterKeySalt)

The key is deterministic, so a user who votes again replaces their earlier
ballot. Without the salt the key cannot be traced back to the user.

# Ownership

Only the user who started an election may open, close, evaluate, delete it
or remove candidates:

	if err := auth.ValidateOwner(election.Owner, cfg.User); err != nil {
		return err // ErrNotOwner
	}

# ID Generation

Random UUIDs for database records:

	id := auth.GenerateID()
*/
package auth
