// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Errors the command handlers wrap so callers can tell them apart
var (
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)
