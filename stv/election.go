// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Election holds the fixed seats and candidates plus one ballot per voter.
type Election struct {
	seats      int
	candidates []string

	mu      sync.Mutex
	ballots map[string]*Ballot
}

func validateNames(candidates []string) error {
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidName)
		}
		if seen[c] {
			return fmt.Errorf("%w: %q listed twice", ErrInvalidName, c)
		}
		seen[c] = true
	}
	return nil
}

// NewElection validates seats and candidate names. Seats exceeding the
// candidate count are accepted here and rejected by the tally.
func NewElection(seats int, candidates []string) (*Election, error) {
	if seats < 1 {
		return nil, ErrInvalidSeats
	}
	if err := validateNames(candidates); err != nil {
		return nil, err
	}

	return &Election{
		seats:      seats,
		candidates: sortedUnique(candidates),
		ballots:    make(map[string]*Ballot),
	}, nil
}

func (e *Election) Seats() int { return e.seats }

// Candidates returns the candidate names in sorted order.
func (e *Election) Candidates() []string {
	return slices.Clone(e.candidates)
}

// NewBallot creates an unrecorded ballot for voter over this election's candidates.
func (e *Election) NewBallot(voter string) *Ballot {
	return NewBallot(voter, e.candidates)
}

// Record stores b as its voter's ballot, replacing any earlier one.
func (e *Election) Record(b *Ballot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ballots[b.voter] = b
}

// Cast replays ranking into a new ballot for voter and records it.
func (e *Election) Cast(voter string, ranking []string) (*Ballot, error) {
	b, err := BallotFromSequence(ranking, voter, e.candidates)
	if err != nil {
		return nil, err
	}
	e.Record(b)
	return b, nil
}

// Ballot returns the recorded ballot for voter.
func (e *Election) Ballot(voter string) (*Ballot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.ballots[voter]
	return b, ok
}

// Voters returns the keys of all recorded ballots in sorted order.
func (e *Election) Voters() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	voters := make([]string, 0, len(e.ballots))
	for v := range e.ballots {
		voters = append(voters, v)
	}
	sort.Strings(voters)
	return voters
}

func (e *Election) BallotCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ballots)
}

// Rankings snapshots every recorded ranking, ordered by voter key.
func (e *Election) Rankings() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	voters := make([]string, 0, len(e.ballots))
	for v := range e.ballots {
		voters = append(voters, v)
	}
	sort.Strings(voters)

	rankings := make([][]string, len(voters))
	for i, v := range voters {
		rankings[i] = e.ballots[v].Ranking()
	}
	return rankings
}

// CastBallots returns every ranking sorted lexicographically for display.
func (e *Election) CastBallots() [][]string {
	rankings := e.Rankings()
	slices.SortStableFunc(rankings, slices.Compare[[]string])
	return rankings
}

// Run counts the recorded ballots with Meek's method.
func (e *Election) Run(opts ...Option) (*Result, error) {
	return Count(e.seats, e.candidates, e.Rankings(), opts...)
}

// BeginSession starts an interactive ballot for voter. The ballot is
// recorded only once the session completes.
func (e *Election) BeginSession(voter string) *Session {
	return &Session{
		election: e,
		ballot:   e.NewBallot(voter),
	}
}
