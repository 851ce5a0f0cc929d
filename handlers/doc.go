// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the command handlers for Quickly Elect.

# Handler Types

Each handler is a struct with store, config and output dependencies:

  - ElectionHandler: Election lifecycle and candidate sign-up
  - VotingHandler: Batch and interactive ballots
  - ResultsHandler: Evaluation, stored results, export, import and tally

Handlers are created via constructor functions:

	electionHandler := handlers.NewElectionHandler(store, cfg, os.Stdout)

Every command takes its positional arguments and returns an error. Errors
wrap the sentinels of models, store, auth and stv so middleware.ErrorResponse
can classify them.

# Election Lifecycle

Elections progress through new → open → closed → evaluated. A closed
election may be reopened; an evaluated one is final.

	start <title> <seats>    → Start (owner = current user)
	run <title>              → Run (new only)
	withdraw <title>         → Withdraw (new only)
	remove <title> <member>  → Remove (owner, new only)
	open <title>             → Open (owner, needs as many candidates as seats)
	close <title>            → Close (owner, open only)
	delete <title>           → Delete (owner)
	view <title>             → View

# Voting

	vote <title> [choice...] → Vote
	ballot <title>           → MyBallot (the current user's stored ballot)

Choices rank candidates in order. Listing fewer than all candidates ends the
ballot there, and the last remaining candidate is ranked automatically.
Without choices the ballot is built in the terminal UI one round at a time
and only recorded if the voter finishes it. Voting again replaces the
voter's earlier ballot.

Voters are identified by an HMAC of their user name (see auth.HashVoterKey).

# Results

	evaluate <title>         → Evaluate (owner, closed only, Meek STV)
	results <title>          → Results (evaluated only)
	export <title> <file>    → Export (JSON or YAML by extension, "-" for stdout)
	import <title> <file>    → Import (creates a closed election)
	tally <file>             → Tally (counts a file without the database)

A tie during elimination fails the evaluation and leaves the election closed.
*/
package handlers
