// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
	"github.com/danielhkuo/quickly-elect/testutil"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(testutil.SetupTestDB(t))
}

func newElection(title string, seats int, candidates ...string) models.Election {
	return models.Election{
		ID:         auth.GenerateID(),
		Title:      title,
		Owner:      "owner",
		Seats:      seats,
		Status:     models.StatusNew,
		Method:     models.MethodMeek,
		Candidates: candidates,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreateAndGetElection(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 2, "carol", "alice", "bob")
	require.NoError(t, s.CreateElection(e))

	got, err := s.GetElection("board")
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "owner", got.Owner)
	assert.Equal(t, 2, got.Seats)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Equal(t, []string{"alice", "bob", "carol"}, got.Candidates)
	assert.WithinDuration(t, e.CreatedAt, got.CreatedAt, time.Second)

	err = s.CreateElection(newElection("board", 1))
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.GetElection("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateElection_DuplicateCandidateRollsBack(t *testing.T) {
	s := newStore(t)
	err := s.CreateElection(newElection("board", 1, "alice", "alice"))
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.GetElection("board")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCandidates(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 1)
	require.NoError(t, s.CreateElection(e))

	require.NoError(t, s.AddCandidate(e.ID, "alice"))
	require.NoError(t, s.AddCandidate(e.ID, "bob"))
	assert.ErrorIs(t, s.AddCandidate(e.ID, "alice"), store.ErrDuplicate)

	require.NoError(t, s.RemoveCandidate(e.ID, "alice"))
	assert.ErrorIs(t, s.RemoveCandidate(e.ID, "alice"), store.ErrNotFound)

	got, err := s.GetElection("board")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, got.Candidates)
}

func TestSetStatus(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 1, "alice")
	require.NoError(t, s.CreateElection(e))

	require.NoError(t, s.SetStatus(e.ID, models.StatusOpen))
	got, err := s.GetElection("board")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, got.Status)

	assert.ErrorIs(t, s.SetStatus("missing", models.StatusOpen), store.ErrNotFound)
	assert.Error(t, s.SetStatus(e.ID, "archived"), "schema rejects unknown statuses")
}

func TestSaveBallot(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 1, "a", "b", "c")
	require.NoError(t, s.CreateElection(e))

	id1, updated, err := s.SaveBallot(e.ID, "voter1", []string{"a", "b"})
	require.NoError(t, err)
	assert.False(t, updated)

	id2, updated, err := s.SaveBallot(e.ID, "voter1", []string{"c"})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, id1, id2, "re-voting keeps the ballot")

	_, _, err = s.SaveBallot(e.ID, "voter2", []string{})
	require.NoError(t, err)

	count, err := s.CountBallots(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rankings, err := s.Rankings(e.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"voter1": {"c"},
		"voter2": {},
	}, rankings)
}

func TestDeleteElection(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 1, "a", "b")
	require.NoError(t, s.CreateElection(e))
	_, _, err := s.SaveBallot(e.ID, "voter1", []string{"a"})
	require.NoError(t, err)
	require.NoError(t, s.SaveSnapshot(models.ResultSnapshot{
		ID: auth.GenerateID(), ElectionID: e.ID, Method: models.MethodMeek, ComputedAt: time.Now(),
	}))

	require.NoError(t, s.DeleteElection(e.ID))

	_, err = s.GetElection("board")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.LatestSnapshot(e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	rankings, err := s.Rankings(e.ID)
	require.NoError(t, err)
	assert.Empty(t, rankings)

	// the title can be reused
	require.NoError(t, s.CreateElection(newElection("board", 1)))
}

func referenceData() store.VoteData {
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
	votes := make(map[string][]string)
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			votes[fmt.Sprintf("user%03d", len(votes))] = g.ranking
		}
	}
	return store.VoteData{Candidates: []string{"a", "b", "c", "d"}, Seats: 3, Votes: votes}
}

func TestImportAndLoadElection(t *testing.T) {
	s := newStore(t)
	data := referenceData()
	e := newElection("board", 1)
	e.Status = models.StatusClosed

	require.NoError(t, s.ImportElection(e, data))

	stored, err := s.GetElection("board")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Seats, "seats come from the vote data")
	assert.Equal(t, []string{"a", "b", "c", "d"}, stored.Candidates)

	exported, err := s.VoteData(stored)
	require.NoError(t, err)
	assert.Equal(t, data, exported)

	election, err := s.LoadElection(stored)
	require.NoError(t, err)
	assert.Equal(t, 24, election.BallotCount())

	result, err := election.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, result.ElectedCandidates())
}

func TestImportElection_Atomic(t *testing.T) {
	s := newStore(t)
	data := store.VoteData{
		Candidates: []string{"a", "b"},
		Seats:      1,
		Votes:      map[string][]string{"v1": {"a"}, "v2": {"z"}},
	}

	err := s.ImportElection(newElection("board", 1), data)
	assert.ErrorIs(t, err, store.ErrMalformed)

	_, err = s.GetElection("board")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportElection_TooFewCandidates(t *testing.T) {
	s := newStore(t)
	data := store.VoteData{
		Candidates: []string{"a", "b"},
		Seats:      3,
		Votes:      map[string][]string{"v1": {"a"}},
	}

	err := s.ImportElection(newElection("board", 1), data)
	assert.ErrorIs(t, err, models.ErrBadRequest)

	_, err = s.GetElection("board")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSnapshots(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 1, "a", "b")
	require.NoError(t, s.CreateElection(e))

	_, err := s.LatestSnapshot(e.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	earlier := models.ResultSnapshot{
		ID:         auth.GenerateID(),
		ElectionID: e.ID,
		Method:     models.MethodMeek,
		ComputedAt: time.Now().Add(-time.Hour),
		Elected:    []string{"b"},
	}
	later := models.ResultSnapshot{
		ID:         auth.GenerateID(),
		ElectionID: e.ID,
		Method:     models.MethodMeek,
		ComputedAt: time.Now(),
		Quota:      1.5,
		Elected:    []string{"a"},
		Eliminated: []string{"b"},
		Exhausted:  0.25,
		Ballots:    [][]string{{"a"}, {"a", "b"}, {"b"}},
	}
	require.NoError(t, s.SaveSnapshot(later))
	require.NoError(t, s.SaveSnapshot(earlier))

	got, err := s.LatestSnapshot(e.ID)
	require.NoError(t, err)
	assert.Equal(t, later.ID, got.ID)
	assert.Equal(t, later.Elected, got.Elected)
	assert.Equal(t, later.Eliminated, got.Eliminated)
	assert.Equal(t, later.Ballots, got.Ballots)
	assert.InDelta(t, 1.5, got.Quota, 1e-12)
	assert.InDelta(t, 0.25, got.Exhausted, 1e-12)
}

func TestGetBallot(t *testing.T) {
	s := newStore(t)
	e := newElection("board", 1, "a", "b", "c")
	require.NoError(t, s.CreateElection(e))

	_, err := s.GetBallot(e.ID, "voter1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	id, _, err := s.SaveBallot(e.ID, "voter1", []string{"b", "c", "a"})
	require.NoError(t, err)

	b, err := s.GetBallot(e.ID, "voter1")
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, e.ID, b.ElectionID)
	assert.Equal(t, []string{"b", "c", "a"}, b.Ranking)

	_, _, err = s.SaveBallot(e.ID, "voter2", []string{})
	require.NoError(t, err)
	empty, err := s.GetBallot(e.ID, "voter2")
	require.NoError(t, err)
	assert.Equal(t, []string{}, empty.Ranking)
}
