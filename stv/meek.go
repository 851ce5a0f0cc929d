// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
)

// Epsilon bounds both keep-value convergence and elimination ties.
const Epsilon = 0.0001

// Phase names a step of the counting loop.
type Phase string

const (
	PhaseDistribute   Phase = "distribute"
	PhaseConverge     Phase = "converge"
	PhaseCheckWinners Phase = "check-winners"
	PhaseEliminate    Phase = "eliminate"
	PhaseFill         Phase = "fill"
)

// Round records the state after one distribution pass and what the count
// did with it.
type Round struct {
	Iteration  int                `json:"iteration"`
	Outcome    Phase              `json:"outcome"`
	Votes      map[string]float64 `json:"votes"`
	KeepValues map[string]float64 `json:"keep_values"`
	Exhausted  float64            `json:"exhausted"`
	Change     float64            `json:"largest_change,omitempty"`
	Elected    []string           `json:"elected,omitempty"`
	Eliminated string             `json:"eliminated,omitempty"`
}

// Result is the outcome of a successful count.
type Result struct {
	Seats      int      `json:"seats"`
	Ballots    int      `json:"ballots"`
	Quota      float64  `json:"quota"`
	Elected    []string `json:"elected"`
	Eliminated []string `json:"eliminated"`
	Exhausted  float64  `json:"exhausted"`
	Rounds     []Round  `json:"rounds"`
}

// ElectedCandidates returns the elected set in sorted order.
func (r *Result) ElectedCandidates() []string {
	return slices.Clone(r.Elected)
}

// Option configures a count.
type Option func(*tally)

// WithLogger sends per-round diagnostics to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(t *tally) {
		if logger != nil {
			t.logger = logger
		}
	}
}

type tally struct {
	seats    int
	quota    float64
	rankings [][]string

	names     []string
	hopeful   map[string]bool
	elected   map[string]bool
	keep      map[string]float64
	votes     map[string]float64
	exhausted float64

	eliminated []string
	rounds     []Round
	logger     *slog.Logger
}

// Count elects seats candidates from rankings using Meek's method.
// Rankings must only name members of candidates.
func Count(seats int, candidates []string, rankings [][]string, opts ...Option) (*Result, error) {
	if seats < 1 {
		return nil, ErrInvalidSeats
	}
	if err := validateNames(candidates); err != nil {
		return nil, err
	}

	t := &tally{
		seats:    seats,
		quota:    float64(len(rankings)) / float64(seats+1),
		rankings: rankings,
		names:    sortedUnique(candidates),
		hopeful:  make(map[string]bool),
		elected:  make(map[string]bool),
		keep:     make(map[string]float64),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, c := range t.names {
		t.hopeful[c] = true
		t.keep[c] = 1
	}
	for _, ranking := range rankings {
		for _, c := range ranking {
			if _, ok := t.keep[c]; !ok {
				return nil, fmt.Errorf("%w: ballot ranks unknown candidate %q", ErrInvalidChoice, c)
			}
		}
	}

	t.logger.Debug("count started", "seats", seats, "ballots", len(rankings), "quota", t.quota)

	phase := PhaseDistribute
	for {
		switch phase {
		case PhaseDistribute:
			if !t.contested() {
				phase = PhaseFill
				continue
			}
			t.distribute()
			phase = PhaseConverge

		case PhaseConverge:
			if change := t.converge(); change > Epsilon {
				t.record(PhaseConverge, func(r *Round) { r.Change = change })
				phase = PhaseDistribute
				continue
			}
			phase = PhaseCheckWinners

		case PhaseCheckWinners:
			if winners := t.electWinners(); len(winners) > 0 {
				t.record(PhaseCheckWinners, func(r *Round) { r.Elected = winners })
				phase = PhaseDistribute
				continue
			}
			phase = PhaseEliminate

		case PhaseEliminate:
			loser, err := t.eliminate()
			if err != nil {
				return nil, err
			}
			t.record(PhaseEliminate, func(r *Round) { r.Eliminated = loser })
			phase = PhaseDistribute

		case PhaseFill:
			return t.finish()
		}
	}
}

// contested reports whether seats remain and more hopefuls stand than
// there are seats left to fill.
func (t *tally) contested() bool {
	return len(t.elected) < t.seats && len(t.elected)+len(t.hopeful) > t.seats
}

func (t *tally) distribute() {
	t.votes = make(map[string]float64, len(t.names))
	for _, c := range t.names {
		if t.keep[c] > 0 {
			t.votes[c] = 0
		}
	}
	t.exhausted = 0

	for _, ranking := range t.rankings {
		weight := 1.0
		for _, c := range ranking {
			keep := t.keep[c]
			if keep == 0 {
				continue
			}
			assigned := weight * keep
			t.votes[c] += assigned
			weight -= assigned
		}
		t.exhausted += weight
	}
}

// converge moves every elected keep value towards quota/votes and returns
// the largest change applied.
func (t *tally) converge() float64 {
	largest := 0.0
	for _, c := range t.names {
		if !t.elected[c] || t.votes[c] == 0 {
			continue
		}
		next := t.keep[c] * t.quota / t.votes[c]
		largest = math.Max(largest, math.Abs(next-t.keep[c]))
		t.keep[c] = next
	}
	return largest
}

func (t *tally) electWinners() []string {
	var winners []string
	for _, c := range t.names {
		if t.hopeful[c] && t.votes[c] > t.quota {
			winners = append(winners, c)
		}
	}
	for _, c := range winners {
		delete(t.hopeful, c)
		t.elected[c] = true
	}
	return winners
}

func (t *tally) eliminate() (string, error) {
	least := math.Inf(1)
	for c := range t.hopeful {
		least = math.Min(least, t.votes[c])
	}

	var tied []string
	for _, c := range t.names {
		if t.hopeful[c] && t.votes[c] < least+Epsilon {
			tied = append(tied, c)
		}
	}
	if len(tied) != 1 {
		t.logger.Debug("elimination tie", "candidates", tied, "votes", least)
		return "", &TieError{Candidates: tied}
	}

	loser := tied[0]
	delete(t.hopeful, loser)
	t.keep[loser] = 0
	t.eliminated = append(t.eliminated, loser)
	return loser, nil
}

func (t *tally) finish() (*Result, error) {
	var filled []string
	if len(t.elected) < t.seats {
		for _, c := range t.names {
			if t.hopeful[c] {
				filled = append(filled, c)
			}
		}
	}
	if len(filled) > 0 {
		t.logger.Debug("electing all remaining candidates", "candidates", filled)
		for _, c := range filled {
			delete(t.hopeful, c)
			t.elected[c] = true
		}
		t.record(PhaseFill, func(r *Round) { r.Elected = filled })
	}

	if len(t.elected) != t.seats {
		return nil, fmt.Errorf("%w: elected %d of %d seats", ErrSizeInvariant, len(t.elected), t.seats)
	}

	var elected []string
	for c := range t.elected {
		elected = append(elected, c)
	}
	slices.Sort(elected)
	t.logger.Debug("count finished", "elected", elected)

	return &Result{
		Seats:      t.seats,
		Ballots:    len(t.rankings),
		Quota:      t.quota,
		Elected:    elected,
		Eliminated: t.eliminated,
		Exhausted:  t.exhausted,
		Rounds:     t.rounds,
	}, nil
}

func (t *tally) record(outcome Phase, annotate func(*Round)) {
	r := Round{
		Iteration:  len(t.rounds) + 1,
		Outcome:    outcome,
		Votes:      maps.Clone(t.votes),
		KeepValues: maps.Clone(t.keep),
		Exhausted:  t.exhausted,
	}
	annotate(&r)
	t.rounds = append(t.rounds, r)

	t.logger.Debug("count round",
		"iteration", r.Iteration,
		"outcome", r.Outcome,
		"votes", r.Votes,
		"keep_values", r.KeepValues,
		"elected", r.Elected,
		"eliminated", r.Eliminated,
	)
}
