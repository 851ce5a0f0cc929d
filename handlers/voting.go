// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
	"github.com/danielhkuo/quickly-elect/stv"
	"github.com/danielhkuo/quickly-elect/tui"
)

var errNotInteractive = errors.New("no choices given and input is not a terminal")

// Interactive drives a ballot session to completion or abandonment.
type Interactive func(session *stv.Session, title string) error

type VotingHandler struct {
	store       *store.Store
	cfg         cliparse.Config
	out         io.Writer
	interactive Interactive
}

// NewVotingHandler uses the terminal UI for interactive ballots when in and
// out are both terminals.
func NewVotingHandler(s *store.Store, cfg cliparse.Config, in io.Reader, out io.Writer) *VotingHandler {
	h := &VotingHandler{store: s, cfg: cfg, out: out}
	if isTerminal(in) && isTerminal(out) {
		h.interactive = func(session *stv.Session, title string) error {
			return tui.Run(session, title, in, out)
		}
	}
	return h
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Vote handles `vote <title> [choice...]`. Choices rank candidates in order;
// listing fewer than all candidates stops the ballot there. Without choices
// the ballot is built interactively.
func (h *VotingHandler) Vote(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: usage: vote <title> [choice...]", models.ErrBadRequest)
	}
	choices := args[1:]

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}
	if err := requireStatus(e, "vote in", models.StatusOpen); err != nil {
		return err
	}

	election, err := stv.NewElection(e.Seats, e.Candidates)
	if err != nil {
		return err
	}
	voterKey := auth.HashVoterKey(h.cfg.User, h.cfg.VoterKeySalt)
	session := election.BeginSession(voterKey)

	if len(choices) == 0 {
		if h.interactive == nil {
			return fmt.Errorf("%w: %w", models.ErrBadRequest, errNotInteractive)
		}
		if err := h.interactive(session, e.Title); err != nil {
			return err
		}
		if !session.Done() {
			middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
				Message: "Voting cancelled. Your ballot was not recorded.",
			})
			return nil
		}
	} else if err := castChoices(session, choices); err != nil {
		return err
	}

	ranking := session.Ballot().Ranking()
	ballotID, updated, err := h.store.SaveBallot(e.ID, voterKey, ranking)
	if err != nil {
		return err
	}

	slog.Info("ballot submitted",
		"election_id", e.ID,
		"ballot_id", ballotID,
		"ranked", len(ranking),
		"updated", updated,
	)

	middleware.Respond(h.out, h.cfg.Output, models.VoteResponse{
		Title:   e.Title,
		Ranking: ranking,
		Updated: updated,
	})
	return nil
}

// castChoices submits each choice in order and stops the ballot if
// candidates are left over. A full ranking may name the last candidate,
// which the session has already ranked on its own.
func castChoices(session *stv.Session, choices []string) error {
	for i, name := range choices {
		if session.Done() {
			if i == len(choices)-1 && autoRanked(session, choices[:i], name) {
				break
			}
			return fmt.Errorf("%w: %q is not one of the possible options", stv.ErrInvalidChoice, name)
		}
		if err := session.Submit(stv.Candidate(name)); err != nil {
			return err
		}
	}
	if !session.Done() {
		return session.Submit(stv.Stop)
	}
	return nil
}

// autoRanked reports whether name is the last entry of the session's ranking
// without being one of the explicit choices.
func autoRanked(session *stv.Session, explicit []string, name string) bool {
	ranking := session.Ballot().Ranking()
	if len(ranking) == 0 || ranking[len(ranking)-1] != name {
		return false
	}
	return !slices.Contains(explicit, name)
}

// MyBallot handles `ballot <title>`: the current user's stored ballot
func (h *VotingHandler) MyBallot(args []string) error {
	if err := requireArgs(args, 1, "ballot <title>"); err != nil {
		return err
	}

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}

	voterKey := auth.HashVoterKey(h.cfg.User, h.cfg.VoterKeySalt)
	ballot, err := h.store.GetBallot(e.ID, voterKey)
	if err != nil {
		return err
	}

	middleware.Respond(h.out, h.cfg.Output, models.MyBallotResponse{
		Title:  e.Title,
		Ballot: ballot,
	})
	return nil
}
