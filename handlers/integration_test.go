// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/testutil"
)

// TestFullElectionWorkflow walks one election from creation to results
func TestFullElectionWorkflow(t *testing.T) {
	env := newTestEnv(t)

	// Step 1: Create the election
	require.NoError(t, env.elections("owner").Start([]string{"board", "2"}))

	// Step 2: Candidates sign up
	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, env.elections(name).Run([]string{"board"}))
	}

	// Step 3: Open for voting
	require.NoError(t, env.elections("owner").Open([]string{"board"}))

	// Step 4: Vote
	ballots := map[string][]string{
		"v1": {"alice", "bob"},
		"v2": {"alice", "carol"},
		"v3": {"alice", "bob"},
		"v4": {"bob", "alice"},
		"v5": {"bob"},
		"v6": {"carol", "bob"},
	}
	for voter, ranking := range ballots {
		require.NoError(t, env.voting(voter).Vote(append([]string{"board"}, ranking...)), voter)
	}

	// Step 5: Close, reopen for a late voter, close again
	require.NoError(t, env.elections("owner").Close([]string{"board"}))
	assert.ErrorIs(t, env.voting("v7").Vote([]string{"board", "carol"}), models.ErrConflict)

	require.NoError(t, env.elections("owner").Open([]string{"board"}))
	require.NoError(t, env.voting("v7").Vote([]string{"board", "carol"}))
	require.NoError(t, env.elections("owner").Close([]string{"board"}))

	// Step 6: View shows every ballot
	require.NoError(t, env.elections("anyone").View([]string{"board"}))
	var view models.ViewElectionResponse
	testutil.AssertJSON(t, env.out, &view)
	assert.Equal(t, 7, view.BallotCount)
	assert.Equal(t, models.StatusClosed, view.Election.Status)

	// Step 7: Evaluate
	require.NoError(t, env.results("owner").Evaluate([]string{"board"}))
	var result models.EvaluateResponse
	testutil.AssertJSON(t, env.out, &result)
	assert.Len(t, result.Snapshot.Elected, 2)
	assert.Equal(t, []string{"alice", "bob"}, result.Snapshot.Elected)
	assert.Len(t, result.Snapshot.Ballots, 7)

	// Step 8: Evaluated elections are final
	assert.ErrorIs(t, env.elections("owner").Open([]string{"board"}), models.ErrConflict)
	assert.ErrorIs(t, env.results("owner").Evaluate([]string{"board"}), models.ErrConflict)

	require.NoError(t, env.results("anyone").Results([]string{"board"}))
	var again models.EvaluateResponse
	testutil.AssertJSON(t, env.out, &again)
	assert.Equal(t, result.Snapshot.Elected, again.Snapshot.Elected)
}
