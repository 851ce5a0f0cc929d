// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stv counts multi-seat elections from ranked ballots using Meek's
method of the Single Transferable Vote.

# Ballots

A Ballot is built one pick at a time. Choices lists the candidates still
available plus Stop while more than one remains:

	b := stv.NewBallot(voterKey, candidates)
	b.Submit(stv.Candidate("alice"))
	b.Submit(stv.Stop) // leave the rest unranked

Submitting a candidate that is not among the remaining choices fails with
ErrInvalidChoice. Stored rankings are rebuilt with BallotFromSequence.

# Sessions

A Session wraps one in-progress ballot for interactive voting. It survives
any delay between rounds and records the ballot in its Election only when
nothing is left to choose:

	s := election.BeginSession(voterKey)
	s.Start()
	for !s.Done() {
		s.Submit(pick(s.Choices()))
	}

# Counting

Count (or Election.Run) runs the count as an explicit loop of phases:

	distribute → converge → check-winners → eliminate → distribute ...

The quota is ballots/(seats+1) with no rounding. Elected candidates keep
only enough of each vote to sit at quota; the rest flows down the ranking.
When no keep value moves by more than Epsilon and nobody new passes quota,
the weakest hopeful is eliminated. Hopefuls within Epsilon of the minimum
are a tie, reported as *TieError and never broken arbitrarily. When the
hopefuls left exactly fill the open seats they are all elected.

Every distribution pass is kept as a Round in the Result so the
keep-value trajectory can be inspected or logged.

# Results

	result.ElectedCandidates() // sorted elected set
	election.CastBallots()     // rankings sorted for display
*/
package stv
