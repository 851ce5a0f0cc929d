// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/store"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		VoterKeySalt: "test-voter-salt",
		User:         "owner",
		Output:       cliparse.OutputJSON,
	}
}

// CreateTestElection creates an election owned by cfg.User and returns it.
// status should be "new", "open", "closed" or "evaluated"
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, title string, seats int, candidates []string, status string) models.Election {
	t.Helper()

	e := models.Election{
		ID:         auth.GenerateID(),
		Title:      title,
		Owner:      cfg.User,
		Seats:      seats,
		Status:     status,
		Method:     models.MethodMeek,
		Candidates: candidates,
		CreatedAt:  time.Now(),
	}
	if err := store.New(conn).CreateElection(e); err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return e
}

// CastTestBallot stores a ballot for user and returns the ballot ID
func CastTestBallot(t *testing.T, conn *sql.DB, cfg cliparse.Config, electionID, user string, ranking []string) string {
	t.Helper()

	voterKey := auth.HashVoterKey(user, cfg.VoterKeySalt)
	ballotID, _, err := store.New(conn).SaveBallot(electionID, voterKey, ranking)
	if err != nil {
		t.Fatalf("Failed to cast test ballot: %v", err)
	}

	return ballotID
}

// AssertJSON decodes the command output into the provided struct
func AssertJSON(t *testing.T, out *bytes.Buffer, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(out).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON output: %v. Output: %s", err, out.String())
	}
}
