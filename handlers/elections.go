// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
)

type ElectionHandler struct {
	store *store.Store
	cfg   cliparse.Config
	out   io.Writer
}

func NewElectionHandler(s *store.Store, cfg cliparse.Config, out io.Writer) *ElectionHandler {
	return &ElectionHandler{store: s, cfg: cfg, out: out}
}

// Start handles `start <title> <seats>`
func (h *ElectionHandler) Start(args []string) error {
	if err := requireArgs(args, 2, "start <title> <seats>"); err != nil {
		return err
	}
	title := args[0]

	seats, err := strconv.Atoi(args[1])
	if err != nil || seats < 1 {
		return fmt.Errorf("%w: seats must be a positive number, got %q", models.ErrBadRequest, args[1])
	}
	if err := auth.ValidateUser(h.cfg.User); err != nil {
		return err
	}

	e := models.Election{
		ID:         auth.GenerateID(),
		Title:      title,
		Owner:      h.cfg.User,
		Seats:      seats,
		Status:     models.StatusNew,
		Method:     models.MethodMeek,
		Candidates: []string{},
		CreatedAt:  time.Now(),
	}
	if err := h.store.CreateElection(e); err != nil {
		return err
	}

	slog.Info("election created", "election_id", e.ID, "owner", e.Owner, "seats", seats)

	middleware.Respond(h.out, h.cfg.Output, models.StartElectionResponse{
		ElectionID: e.ID,
		Title:      e.Title,
		Seats:      e.Seats,
		Owner:      e.Owner,
	})
	return nil
}

// Delete handles `delete <title>`
func (h *ElectionHandler) Delete(args []string) error {
	if err := requireArgs(args, 1, "delete <title>"); err != nil {
		return err
	}

	e, err := ownedElection(h.store, args[0], h.cfg.User)
	if err != nil {
		return err
	}
	if err := h.store.DeleteElection(e.ID); err != nil {
		return err
	}

	slog.Info("election deleted", "election_id", e.ID)

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("Election '%s' has been deleted.", e.Title),
	})
	return nil
}

// Run handles `run <title>`: the current user stands as a candidate
func (h *ElectionHandler) Run(args []string) error {
	if err := requireArgs(args, 1, "run <title>"); err != nil {
		return err
	}
	if err := auth.ValidateUser(h.cfg.User); err != nil {
		return err
	}

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}
	if err := requireStatus(e, "join", models.StatusNew); err != nil {
		return err
	}
	if err := h.store.AddCandidate(e.ID, h.cfg.User); err != nil {
		return err
	}

	slog.Info("candidate added", "election_id", e.ID, "candidate", h.cfg.User)

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("%s is now running in election '%s'.", h.cfg.User, e.Title),
	})
	return nil
}

// Withdraw handles `withdraw <title>`: the current user stops standing
func (h *ElectionHandler) Withdraw(args []string) error {
	if err := requireArgs(args, 1, "withdraw <title>"); err != nil {
		return err
	}

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}
	if err := requireStatus(e, "leave", models.StatusNew); err != nil {
		return err
	}
	if err := h.store.RemoveCandidate(e.ID, h.cfg.User); err != nil {
		return err
	}

	slog.Info("candidate withdrew", "election_id", e.ID, "candidate", h.cfg.User)

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("%s is no longer running in election '%s'.", h.cfg.User, e.Title),
	})
	return nil
}

// Remove handles `remove <title> <member>`
func (h *ElectionHandler) Remove(args []string) error {
	if err := requireArgs(args, 2, "remove <title> <member>"); err != nil {
		return err
	}
	member := args[1]

	e, err := ownedElection(h.store, args[0], h.cfg.User)
	if err != nil {
		return err
	}
	if err := requireStatus(e, "remove candidates from", models.StatusNew); err != nil {
		return err
	}
	if err := h.store.RemoveCandidate(e.ID, member); err != nil {
		return err
	}

	slog.Info("candidate removed", "election_id", e.ID, "candidate", member)

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("%s has been removed from election '%s'.", member, e.Title),
	})
	return nil
}

// View handles `view <title>`
func (h *ElectionHandler) View(args []string) error {
	if err := requireArgs(args, 1, "view <title>"); err != nil {
		return err
	}

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}
	count, err := h.store.CountBallots(e.ID)
	if err != nil {
		return err
	}

	middleware.Respond(h.out, h.cfg.Output, models.ViewElectionResponse{
		Election:    e,
		BallotCount: count,
	})
	return nil
}

// Open handles `open <title>`. Closed elections may be reopened.
func (h *ElectionHandler) Open(args []string) error {
	if err := requireArgs(args, 1, "open <title>"); err != nil {
		return err
	}

	e, err := ownedElection(h.store, args[0], h.cfg.User)
	if err != nil {
		return err
	}
	if err := requireStatus(e, "open", models.StatusNew, models.StatusClosed); err != nil {
		return err
	}
	if e.Status == models.StatusNew && len(e.Candidates) < e.Seats {
		return fmt.Errorf("%w: election '%s' needs at least %d candidates for %d seats, it has %d",
			models.ErrConflict, e.Title, e.Seats, e.Seats, len(e.Candidates))
	}
	if err := h.store.SetStatus(e.ID, models.StatusOpen); err != nil {
		return err
	}

	slog.Info("election opened", "election_id", e.ID, "from", e.Status)

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("Election '%s' is now open. Cast your vote with `vote %s`!", e.Title, e.Title),
	})
	return nil
}

// Close handles `close <title>`
func (h *ElectionHandler) Close(args []string) error {
	if err := requireArgs(args, 1, "close <title>"); err != nil {
		return err
	}

	e, err := ownedElection(h.store, args[0], h.cfg.User)
	if err != nil {
		return err
	}
	if err := requireStatus(e, "close", models.StatusOpen); err != nil {
		return err
	}
	if err := h.store.SetStatus(e.ID, models.StatusClosed); err != nil {
		return err
	}

	slog.Info("election closed", "election_id", e.ID)

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("Election '%s' is now closed.", e.Title),
	})
	return nil
}
