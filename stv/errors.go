// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidChoice = errors.New("invalid choice")
	ErrTie           = errors.New("tie between candidates")
	ErrSizeInvariant = errors.New("elected set does not match seat count")
	ErrInvalidSeats  = errors.New("election must have at least one seat")
	ErrInvalidName   = errors.New("invalid candidate name")
)

// TieError reports candidates that cannot be separated during elimination.
type TieError struct {
	Candidates []string
}

func (e *TieError) Error() string {
	return fmt.Sprintf("there is a tie between the following candidates: %s", strings.Join(e.Candidates, ", "))
}

func (e *TieError) Unwrap() error {
	return ErrTie
}
