// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
	"github.com/danielhkuo/quickly-elect/stv"
)

// Exit codes returned by ErrorResponse
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitBadRequest = 2
	ExitNotFound   = 3
	ExitConflict   = 4
	ExitForbidden  = 5
	ExitTie        = 6
)

// Texter is a response that can render itself for people.
type Texter interface {
	Text() string
}

// WithLogging wraps a command with logging
func WithLogging(name string, next func(args []string) error) func(args []string) error {
	return func(args []string) error {
		start := time.Now()

		// Log command
		slog.Debug("command started",
			"command", name,
			"args", len(args),
		)

		// Call the next handler
		err := next(args)

		// Log completion
		duration := time.Since(start)
		if err != nil {
			slog.Info("command failed",
				"command", name,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
		} else {
			slog.Info("command completed",
				"command", name,
				"duration_ms", duration.Milliseconds(),
			)
		}
		return err
	}
}

// Respond writes a response in the configured output format
func Respond(w io.Writer, format string, data Texter) {
	if format == cliparse.OutputJSON {
		JSONResponse(w, data)
		return
	}
	if _, err := fmt.Fprintln(w, data.Text()); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w io.Writer, data interface{}) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes err in the configured output format and returns the
// process exit code for it
func ErrorResponse(w io.Writer, format string, err error) int {
	title, code := classify(err)
	Respond(w, format, models.ErrorResponse{
		Error:   title,
		Message: err.Error(),
	})
	return code
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, stv.ErrTie):
		return "Tie", ExitTie
	case errors.Is(err, store.ErrNotFound):
		return "Not Found", ExitNotFound
	case errors.Is(err, auth.ErrNotOwner):
		return "Forbidden", ExitForbidden
	case errors.Is(err, store.ErrDuplicate), errors.Is(err, models.ErrConflict):
		return "Conflict", ExitConflict
	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, stv.ErrInvalidChoice),
		errors.Is(err, stv.ErrInvalidSeats),
		errors.Is(err, stv.ErrInvalidName),
		errors.Is(err, store.ErrMalformed),
		errors.Is(err, auth.ErrInvalidUser):
		return "Bad Request", ExitBadRequest
	default:
		return "Internal Error", ExitInternal
	}
}
