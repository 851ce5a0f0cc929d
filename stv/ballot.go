// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"fmt"
	"slices"
)

// Choice is one selectable entry on a ballot: either a candidate or Stop.
type Choice struct {
	candidate string
	stop      bool
}

// Stop ends a ranking without ordering the remaining candidates.
var Stop = Choice{stop: true}

// Candidate wraps a candidate name as a Choice.
func Candidate(name string) Choice {
	return Choice{candidate: name}
}

func (c Choice) IsStop() bool { return c.stop }

// Name returns the candidate name, or "" for Stop.
func (c Choice) Name() string { return c.candidate }

func (c Choice) String() string {
	if c.stop {
		return "I do not care about the order of the rest of the ballot"
	}
	return c.candidate
}

// Ballot is one voter's ranking, built one submission at a time.
type Ballot struct {
	voter      string
	candidates []string
	ranking    []string
	remaining  map[string]struct{}
}

// NewBallot creates an empty ballot over a snapshot of candidates.
func NewBallot(voter string, candidates []string) *Ballot {
	snapshot := sortedUnique(candidates)
	remaining := make(map[string]struct{}, len(snapshot))
	for _, c := range snapshot {
		remaining[c] = struct{}{}
	}
	return &Ballot{
		voter:      voter,
		candidates: snapshot,
		ranking:    []string{},
		remaining:  remaining,
	}
}

// BallotFromSequence rebuilds a ballot by replaying each ranked candidate.
func BallotFromSequence(ranking []string, voter string, candidates []string) (*Ballot, error) {
	b := NewBallot(voter, candidates)
	for _, name := range ranking {
		if err := b.Submit(Candidate(name)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Ballot) Voter() string { return b.voter }

// Ranking returns a copy of the ranked candidates, most preferred first.
func (b *Ballot) Ranking() []string {
	return slices.Clone(b.ranking)
}

// Remaining returns the candidates still eligible on this ballot, sorted.
func (b *Ballot) Remaining() []string {
	out := make([]string, 0, len(b.remaining))
	for _, c := range b.candidates {
		if _, ok := b.remaining[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Candidates returns the candidate set the ballot was created with.
func (b *Ballot) Candidates() []string {
	return slices.Clone(b.candidates)
}

// Complete reports whether no further submission is possible.
func (b *Ballot) Complete() bool {
	return len(b.remaining) == 0
}

// Choices lists what the voter may submit next. With fewer than two
// candidates left there is no real choice and Stop is not offered.
func (b *Ballot) Choices() []Choice {
	remaining := b.Remaining()
	choices := make([]Choice, 0, len(remaining)+1)
	for _, c := range remaining {
		choices = append(choices, Candidate(c))
	}
	if len(remaining) > 1 {
		choices = append(choices, Stop)
	}
	return choices
}

// Submit applies one choice to the ballot.
func (b *Ballot) Submit(choice Choice) error {
	if choice.stop {
		clear(b.remaining)
		return nil
	}
	if _, ok := b.remaining[choice.candidate]; !ok {
		return fmt.Errorf("%w: %q is not one of the possible options", ErrInvalidChoice, choice.candidate)
	}
	b.ranking = append(b.ranking, choice.candidate)
	delete(b.remaining, choice.candidate)
	return nil
}

func sortedUnique(names []string) []string {
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
