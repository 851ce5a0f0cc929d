// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
)

// requireArgs checks the argument count of a command
func requireArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("%w: usage: %s", models.ErrBadRequest, usage)
	}
	for _, a := range args {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("%w: usage: %s", models.ErrBadRequest, usage)
		}
	}
	return nil
}

// ownedElection loads an election and checks that user created it
func ownedElection(s *store.Store, title, user string) (models.Election, error) {
	e, err := s.GetElection(title)
	if err != nil {
		return models.Election{}, err
	}
	if err := auth.ValidateOwner(e.Owner, user); err != nil {
		return models.Election{}, fmt.Errorf("only %s can do that in election '%s': %w", e.Owner, e.Title, err)
	}
	return e, nil
}

// requireStatus checks the election is in one of the given statuses
func requireStatus(e models.Election, action string, statuses ...string) error {
	for _, s := range statuses {
		if e.Status == s {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot %s election '%s' while it is %s", models.ErrConflict, action, e.Title, e.Status)
}
