// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"testing"

	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/store"
	"github.com/danielhkuo/quickly-elect/testutil"
)

// testEnv bundles a fresh store with the default test configuration
type testEnv struct {
	db    *sql.DB
	store *store.Store
	cfg   cliparse.Config
	out   *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return &testEnv{
		db:    db,
		store: store.New(db),
		cfg:   testutil.GetTestConfig(),
		out:   &bytes.Buffer{},
	}
}

// as returns the configuration for another acting user
func (env *testEnv) as(user string) cliparse.Config {
	cfg := env.cfg
	cfg.User = user
	return cfg
}

func (env *testEnv) elections(user string) *ElectionHandler {
	env.out.Reset()
	return NewElectionHandler(env.store, env.as(user), env.out)
}

func (env *testEnv) voting(user string) *VotingHandler {
	env.out.Reset()
	return NewVotingHandler(env.store, env.as(user), nil, env.out)
}

func (env *testEnv) results(user string) *ResultsHandler {
	env.out.Reset()
	return NewResultsHandler(env.store, env.as(user), env.out)
}

// referenceBallots is a 24-ballot, 3-seat election over a, b, c and d
func referenceBallots() [][]string {
	groups := []struct {
		count   int
		ranking []string
	}{
		{11, []string{"a", "b", "c", "d"}},
		{10, []string{"b", "a", "d", "c"}},
		{1, []string{"a", "b", "d", "c"}},
		{1, []string{"a", "c", "b", "d"}},
		{1, []string{"b", "d", "a", "c"}},
	}
	var ballots [][]string
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			ballots = append(ballots, g.ranking)
		}
	}
	return ballots
}

func voterName(i int) string {
	return fmt.Sprintf("user%03d", i)
}
