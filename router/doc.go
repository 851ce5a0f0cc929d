// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router maps command names to handlers for Quickly Elect.

# Command Registration

NewRouter creates a Router with every command registered:

	r := router.NewRouter(db, cfg, os.Stdin, os.Stdout)
	err := r.Dispatch(args)

Dispatch runs the command named by the first argument with the rest.
Unknown commands fail with models.ErrBadRequest and the usage list.

# Commands

Election management:

	start <title> <seats>
	delete <title>
	run <title>
	withdraw <title>
	remove <title> <member>
	view <title>
	open <title>
	close <title>

Voting:

	vote <title> [choice...]
	ballot <title>

Results and vote data:

	evaluate <title>
	results <title>
	export <title> <file>
	import <title> <file>
	tally <file>

# Handler Initialization

The router creates handler instances with dependency injection:

	electionHandler := handlers.NewElectionHandler(s, cfg, out)
	votingHandler := handlers.NewVotingHandler(s, cfg, in, out)
	resultsHandler := handlers.NewResultsHandler(s, cfg, out)

Every command is wrapped with middleware.WithLogging.
*/
package router
