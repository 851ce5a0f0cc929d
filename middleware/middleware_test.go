// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
	"github.com/danielhkuo/quickly-elect/stv"
)

func TestWithLogging(t *testing.T) {
	// Create a simple command that records its arguments
	var got []string
	cmd := func(args []string) error {
		got = args
		return nil
	}

	// Wrap with logging middleware
	wrapped := WithLogging("view", cmd)

	err := wrapped([]string{"board"})
	require.NoError(t, err)
	assert.Equal(t, []string{"board"}, got, "command should receive its arguments")
}

func TestWithLogging_PreservesError(t *testing.T) {
	want := errors.New("boom")
	wrapped := WithLogging("close", func(args []string) error {
		return want
	})

	assert.ErrorIs(t, wrapped(nil), want)
}

func TestRespond_Text(t *testing.T) {
	var buf bytes.Buffer
	Respond(&buf, cliparse.OutputText, models.MessageResponse{Message: "hello"})

	assert.Equal(t, "hello\n", buf.String())
}

func TestRespond_JSON(t *testing.T) {
	var buf bytes.Buffer
	Respond(&buf, cliparse.OutputJSON, models.MessageResponse{Message: "hello"})

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "hello", result["message"])
}

func TestJSONResponse(t *testing.T) {
	var buf bytes.Buffer
	JSONResponse(&buf, map[string]int{"seats": 3})

	assert.JSONEq(t, `{"seats": 3}`, buf.String())
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		wantCode  int
		wantTitle string
	}{
		{"not found", fmt.Errorf("election %q %w", "board", store.ErrNotFound), ExitNotFound, "Not Found"},
		{"duplicate", fmt.Errorf("candidate %q %w", "alice", store.ErrDuplicate), ExitConflict, "Conflict"},
		{"conflict", fmt.Errorf("%w: election is not open", models.ErrConflict), ExitConflict, "Conflict"},
		{"not owner", auth.ErrNotOwner, ExitForbidden, "Forbidden"},
		{"bad request", fmt.Errorf("%w: seats must be a number", models.ErrBadRequest), ExitBadRequest, "Bad Request"},
		{"invalid choice", stv.ErrInvalidChoice, ExitBadRequest, "Bad Request"},
		{"malformed", store.ErrMalformed, ExitBadRequest, "Bad Request"},
		{"invalid user", auth.ErrInvalidUser, ExitBadRequest, "Bad Request"},
		{"tie", &stv.TieError{Candidates: []string{"b", "c"}}, ExitTie, "Tie"},
		{"internal", errors.New("disk on fire"), ExitInternal, "Internal Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := ErrorResponse(&buf, cliparse.OutputJSON, tc.err)
			assert.Equal(t, tc.wantCode, code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			assert.Equal(t, tc.wantTitle, resp.Error)
			assert.Equal(t, tc.err.Error(), resp.Message)
		})
	}
}

func TestErrorResponse_TieMessage(t *testing.T) {
	var buf bytes.Buffer
	ErrorResponse(&buf, cliparse.OutputText, &stv.TieError{Candidates: []string{"b", "c"}})

	assert.Equal(t, "Tie: there is a tie between the following candidates: b, c\n", buf.String())
}
