// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

// Election status constants
const (
	StatusNew       = "new"
	StatusOpen      = "open"
	StatusClosed    = "closed"
	StatusEvaluated = "evaluated"
)

// Counting method constants
const (
	MethodMeek = "meek"
)

// Domain types

type Election struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Owner      string    `json:"owner"`
	Seats      int       `json:"seats"`
	Status     string    `json:"status"`
	Method     string    `json:"method"`
	Candidates []string  `json:"candidates"`
	CreatedAt  time.Time `json:"created_at"`
}

type Ballot struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	VoterKey    string    `json:"-"` // Never expose in JSON
	Ranking     []string  `json:"ranking"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ResultSnapshot struct {
	ID         string     `json:"id"`
	ElectionID string     `json:"election_id"`
	Method     string     `json:"method"`
	ComputedAt time.Time  `json:"computed_at"`
	Quota      float64    `json:"quota"`
	Elected    []string   `json:"elected"`
	Eliminated []string   `json:"eliminated"`
	Exhausted  float64    `json:"exhausted"`
	Ballots    [][]string `json:"ballots"`
}

// Response types

type StartElectionResponse struct {
	ElectionID string `json:"election_id"`
	Title      string `json:"title"`
	Seats      int    `json:"seats"`
	Owner      string `json:"owner"`
}

func (r StartElectionResponse) Text() string {
	return fmt.Sprintf("%s created a new election titled '%s', with %s. "+
		"You can apply to run in this election with `run %s`!",
		r.Owner, r.Title, english.Plural(r.Seats, "seat", ""), r.Title)
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (r MessageResponse) Text() string {
	return r.Message
}

type ViewElectionResponse struct {
	Election    Election `json:"election"`
	BallotCount int      `json:"ballot_count"`
}

func (r ViewElectionResponse) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Registered candidates for election **%s** (%s, %s, created %s):\n",
		r.Election.Title,
		english.Plural(r.Election.Seats, "seat", ""),
		r.Election.Status,
		humanize.Time(r.Election.CreatedAt),
	)
	if len(r.Election.Candidates) == 0 {
		b.WriteString("- no candidates!\n")
	}
	for _, c := range r.Election.Candidates {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	if r.Election.Status != StatusNew {
		fmt.Fprintf(&b, "%s cast so far.", english.Plural(r.BallotCount, "ballot", ""))
	}
	return strings.TrimRight(b.String(), "\n")
}

type VoteResponse struct {
	Title   string   `json:"title"`
	Ranking []string `json:"ranking"`
	Updated bool     `json:"updated"`
}

func (r VoteResponse) Text() string {
	var b strings.Builder
	if r.Updated {
		b.WriteString("Thank you! Your vote has been updated.")
	} else {
		b.WriteString("Thank you! Your vote has been recorded.")
	}
	for i, c := range r.Ranking {
		fmt.Fprintf(&b, "\n%s choice: %s", humanize.Ordinal(i+1), c)
	}
	return b.String()
}

type MyBallotResponse struct {
	Title  string `json:"title"`
	Ballot Ballot `json:"ballot"`
}

func (r MyBallotResponse) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your ballot in election **%s** (submitted %s):",
		r.Title, humanize.Time(r.Ballot.SubmittedAt))
	if len(r.Ballot.Ranking) == 0 {
		b.WriteString("\nno candidates ranked")
	}
	for i, c := range r.Ballot.Ranking {
		fmt.Fprintf(&b, "\n%s choice: %s", humanize.Ordinal(i+1), c)
	}
	return b.String()
}

type EvaluateResponse struct {
	Title    string         `json:"title"`
	Seats    int            `json:"seats"`
	Snapshot ResultSnapshot `json:"snapshot"`
}

func (r EvaluateResponse) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Elected in election **%s** (%s):\n", r.Title, english.Plural(r.Seats, "seat", ""))
	for _, c := range r.Snapshot.Elected {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "\nQuota: %s of %s\n",
		humanize.FtoaWithDigits(r.Snapshot.Quota, 4),
		english.Plural(len(r.Snapshot.Ballots), "ballot", ""),
	)
	b.WriteString("\nCast votes:")
	for i, ranking := range r.Snapshot.Ballots {
		fmt.Fprintf(&b, "\n%d. %s", i+1, strings.Join(ranking, ", "))
	}
	return b.String()
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (r ErrorResponse) Text() string {
	if r.Message == "" {
		return r.Error
	}
	return r.Error + ": " + r.Message
}
