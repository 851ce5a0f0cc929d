// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
	"github.com/danielhkuo/quickly-elect/stv"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
	out   io.Writer
}

func NewResultsHandler(s *store.Store, cfg cliparse.Config, out io.Writer) *ResultsHandler {
	return &ResultsHandler{store: s, cfg: cfg, out: out}
}

// Evaluate handles `evaluate <title>`. A tie leaves the election closed so
// the owner can reopen it for more ballots.
func (h *ResultsHandler) Evaluate(args []string) error {
	if err := requireArgs(args, 1, "evaluate <title>"); err != nil {
		return err
	}

	e, err := ownedElection(h.store, args[0], h.cfg.User)
	if err != nil {
		return err
	}
	if err := requireStatus(e, "evaluate", models.StatusClosed); err != nil {
		return err
	}

	election, err := h.store.LoadElection(e)
	if err != nil {
		return err
	}

	snapshot, err := count(election)
	if err != nil {
		slog.Warn("evaluation failed", "election_id", e.ID, "error", err)
		return err
	}
	snapshot.ID = auth.GenerateID()
	snapshot.ElectionID = e.ID

	if err := h.store.SaveSnapshot(snapshot); err != nil {
		return err
	}
	if err := h.store.SetStatus(e.ID, models.StatusEvaluated); err != nil {
		return err
	}

	slog.Info("election evaluated",
		"election_id", e.ID,
		"snapshot_id", snapshot.ID,
		"elected", snapshot.Elected,
	)

	middleware.Respond(h.out, h.cfg.Output, models.EvaluateResponse{
		Title:    e.Title,
		Seats:    e.Seats,
		Snapshot: snapshot,
	})
	return nil
}

// Results handles `results <title>`: the stored outcome of an evaluated election
func (h *ResultsHandler) Results(args []string) error {
	if err := requireArgs(args, 1, "results <title>"); err != nil {
		return err
	}

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}
	if err := requireStatus(e, "show results of", models.StatusEvaluated); err != nil {
		return err
	}

	snapshot, err := h.store.LatestSnapshot(e.ID)
	if err != nil {
		return err
	}

	middleware.Respond(h.out, h.cfg.Output, models.EvaluateResponse{
		Title:    e.Title,
		Seats:    e.Seats,
		Snapshot: snapshot,
	})
	return nil
}

// Export handles `export <title> <file>`. A file of "-" writes JSON to the output.
func (h *ResultsHandler) Export(args []string) error {
	if err := requireArgs(args, 2, "export <title> <file>"); err != nil {
		return err
	}
	path := args[1]

	e, err := h.store.GetElection(args[0])
	if err != nil {
		return err
	}
	data, err := h.store.VoteData(e)
	if err != nil {
		return err
	}

	if path == "-" {
		return store.Encode(h.out, data, store.FormatJSON)
	}
	if err := store.WriteFile(path, data); err != nil {
		return err
	}

	slog.Info("election exported", "election_id", e.ID, "path", path, "ballots", len(data.Votes))

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("Exported election '%s' to %s.", e.Title, path),
	})
	return nil
}

// Import handles `import <title> <file>`: a closed election owned by the
// current user, ready to evaluate.
func (h *ResultsHandler) Import(args []string) error {
	if err := requireArgs(args, 2, "import <title> <file>"); err != nil {
		return err
	}
	if err := auth.ValidateUser(h.cfg.User); err != nil {
		return err
	}

	data, err := store.ReadFile(args[1])
	if err != nil {
		return err
	}

	e := models.Election{
		ID:        auth.GenerateID(),
		Title:     args[0],
		Owner:     h.cfg.User,
		Status:    models.StatusClosed,
		Method:    models.MethodMeek,
		CreatedAt: time.Now(),
	}
	if err := h.store.ImportElection(e, data); err != nil {
		return err
	}

	slog.Info("election imported", "election_id", e.ID, "ballots", len(data.Votes))

	middleware.Respond(h.out, h.cfg.Output, models.MessageResponse{
		Message: fmt.Sprintf("Imported election '%s' with %d ballots. Run `evaluate %s` to count it.",
			e.Title, len(data.Votes), e.Title),
	})
	return nil
}

// Tally handles `tally <file>`: counts a vote-data file without storing anything
func (h *ResultsHandler) Tally(args []string) error {
	if err := requireArgs(args, 1, "tally <file>"); err != nil {
		return err
	}

	election, err := store.LoadFile(args[0])
	if err != nil {
		return err
	}

	snapshot, err := count(election)
	if err != nil {
		return err
	}

	middleware.Respond(h.out, h.cfg.Output, models.EvaluateResponse{
		Title:    args[0],
		Seats:    election.Seats(),
		Snapshot: snapshot,
	})
	return nil
}

// count runs the election and projects the result for display
func count(election *stv.Election) (models.ResultSnapshot, error) {
	result, err := election.Run(stv.WithLogger(slog.Default()))
	if err != nil {
		return models.ResultSnapshot{}, err
	}

	return models.ResultSnapshot{
		Method:     models.MethodMeek,
		ComputedAt: time.Now(),
		Quota:      result.Quota,
		Elected:    result.ElectedCandidates(),
		Eliminated: result.Eliminated,
		Exhausted:  result.Exhausted,
		Ballots:    election.CastBallots(),
	}, nil
}
