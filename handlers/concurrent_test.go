// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/testutil"
)

// TestConcurrentBallotSubmissions verifies that simultaneous ballots from
// different voters are all stored exactly once
func TestConcurrentBallotSubmissions(t *testing.T) {
	env := newTestEnv(t)
	e := testutil.CreateTestElection(t, env.db, env.cfg, "board", 1, []string{"a", "b", "c"}, models.StatusOpen)

	numVoters := 10
	orders := [][]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			h := NewVotingHandler(env.store, env.as(voterName(voterIdx)), nil, &bytes.Buffer{})
			args := append([]string{"board"}, orders[voterIdx%len(orders)]...)
			if err := h.Vote(args); err == nil {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(numVoters), successCount.Load())

	count, err := env.store.CountBallots(e.ID)
	require.NoError(t, err)
	assert.Equal(t, numVoters, count)

	rankings, err := env.store.Rankings(e.ID)
	require.NoError(t, err)
	for _, ranking := range rankings {
		assert.Len(t, ranking, 3, "each ballot is fully ranked")
	}
}

// TestConcurrentRevotes verifies that one voter submitting repeatedly keeps
// a single ballot
func TestConcurrentRevotes(t *testing.T) {
	env := newTestEnv(t)
	e := testutil.CreateTestElection(t, env.db, env.cfg, "board", 1, []string{"a", "b"}, models.StatusOpen)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			choice := []string{"a", "b"}[i%2]
			h := NewVotingHandler(env.store, env.as("alice"), nil, &bytes.Buffer{})
			assert.NoError(t, h.Vote([]string{"board", choice}))
		}(i)
	}
	wg.Wait()

	count, err := env.store.CountBallots(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
