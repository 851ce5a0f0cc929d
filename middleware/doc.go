// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides command middleware and output helpers.

# Command Logging

Wrap commands with logging:

	r.Handle("view", "view <title>", middleware.WithLogging("view", h.View))

Logs command start (name, argument count) and completion (duration_ms,
error if any).

# Output Helpers

Write a response in the configured format (text or json):

	middleware.Respond(w, cfg.Output, models.MessageResponse{Message: "done"})
	middleware.JSONResponse(w, data)

Report an error and get the process exit code:

	code := middleware.ErrorResponse(w, cfg.Output, err)

Errors are classified with errors.Is against the sentinel errors of the
store, auth, stv and models packages:

	store.ErrNotFound                       -> ExitNotFound
	store.ErrDuplicate, models.ErrConflict  -> ExitConflict
	auth.ErrNotOwner                        -> ExitForbidden
	models.ErrBadRequest, stv.ErrInvalid*,
	store.ErrMalformed, auth.ErrInvalidUser -> ExitBadRequest
	stv.ErrTie                              -> ExitTie
	anything else                           -> ExitInternal
*/
package middleware
