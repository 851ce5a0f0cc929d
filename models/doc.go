// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and response types shared by the command
handlers and the store.

# Domain Types

  - Election: election metadata and lifecycle state
  - Ballot: one voter's stored ranking
  - ResultSnapshot: immutable record of an evaluation

# Response Types

Every response can be rendered as JSON or as text through its Text method:

  - StartElectionResponse: election_id, title, seats, owner
  - ViewElectionResponse: election, ballot_count
  - VoteResponse: title, ranking, updated
  - MyBallotResponse: title, ballot
  - EvaluateResponse: title, seats, snapshot
  - MessageResponse: message
  - ErrorResponse: error, message

# Constants

Status values:

	StatusNew       = "new"
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusEvaluated = "evaluated"

Counting method:

	MethodMeek = "meek"
*/
package models
