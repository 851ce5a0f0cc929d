// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/stv"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// Store persists elections, ballots and result snapshots in SQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateElection inserts the election and its candidates. Titles are unique.
func (s *Store) CreateElection(e models.Election) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createElection(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func createElection(tx *sql.Tx, e models.Election) error {
	var exists bool
	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM election WHERE title = $1)
	`, e.Title).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if exists {
		return fmt.Errorf("election %q %w", e.Title, ErrDuplicate)
	}

	_, err = tx.Exec(`
		INSERT INTO election (id, title, owner, seats, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Title, e.Owner, e.Seats, e.Method, e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}

	for _, name := range e.Candidates {
		if err := insertCandidate(tx, e.ID, name); err != nil {
			return err
		}
	}
	return nil
}

// GetElection looks an election up by title, including its candidates.
func (s *Store) GetElection(title string) (models.Election, error) {
	var e models.Election
	err := s.db.QueryRow(`
		SELECT id, title, owner, seats, method, status, created_at
		FROM election
		WHERE title = $1
	`, title).Scan(&e.ID, &e.Title, &e.Owner, &e.Seats, &e.Method, &e.Status, &e.CreatedAt)

	if err == sql.ErrNoRows {
		return models.Election{}, fmt.Errorf("election %q %w", title, ErrNotFound)
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT name FROM candidate WHERE election_id = $1 ORDER BY name
	`, e.ID)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	e.Candidates = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return models.Election{}, fmt.Errorf("failed to scan candidate: %w", err)
		}
		e.Candidates = append(e.Candidates, name)
	}

	return e, rows.Err()
}

// AddCandidate registers name in the election.
func (s *Store) AddCandidate(electionID, name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertCandidate(tx, electionID, name); err != nil {
		return err
	}
	return tx.Commit()
}

// RemoveCandidate drops name from the election.
func (s *Store) RemoveCandidate(electionID, name string) error {
	res, err := s.db.Exec(`
		DELETE FROM candidate WHERE election_id = $1 AND name = $2
	`, electionID, name)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("candidate %q %w", name, ErrNotFound)
	}
	return nil
}

func insertCandidate(tx *sql.Tx, electionID, name string) error {
	var exists bool
	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE election_id = $1 AND name = $2)
	`, electionID, name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check candidate: %w", err)
	}
	if exists {
		return fmt.Errorf("candidate %q %w", name, ErrDuplicate)
	}

	_, err = tx.Exec(`
		INSERT INTO candidate (election_id, name) VALUES ($1, $2)
	`, electionID, name)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

// SetStatus moves the election to a new lifecycle status.
func (s *Store) SetStatus(electionID, status string) error {
	res, err := s.db.Exec(`
		UPDATE election SET status = $1 WHERE id = $2
	`, status, electionID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("election %s %w", electionID, ErrNotFound)
	}
	return nil
}

// DeleteElection removes the election with all ballots and snapshots.
func (s *Store) DeleteElection(electionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM ranking WHERE ballot_id IN (SELECT id FROM ballot WHERE election_id = $1)`,
		`DELETE FROM ballot WHERE election_id = $1`,
		`DELETE FROM candidate WHERE election_id = $1`,
		`DELETE FROM result_snapshot WHERE election_id = $1`,
		`DELETE FROM election WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt, electionID); err != nil {
			return fmt.Errorf("failed to delete election: %w", err)
		}
	}

	return tx.Commit()
}

// SaveBallot stores the voter's ranking, replacing an earlier ballot.
// It reports whether an existing ballot was replaced.
func (s *Store) SaveBallot(electionID, voterKey string, ranking []string) (string, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	ballotID, updated, err := saveBallot(tx, electionID, voterKey, ranking, time.Now())
	if err != nil {
		return "", false, err
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("failed to commit ballot: %w", err)
	}
	return ballotID, updated, nil
}

func saveBallot(tx *sql.Tx, electionID, voterKey string, ranking []string, now time.Time) (string, bool, error) {
	var ballotID string
	err := tx.QueryRow(`
		SELECT id FROM ballot WHERE election_id = $1 AND voter_key = $2
	`, electionID, voterKey).Scan(&ballotID)

	updated := err != sql.ErrNoRows
	switch {
	case updated && err != nil:
		return "", false, fmt.Errorf("failed to query ballot: %w", err)
	case updated:
		_, err = tx.Exec(`UPDATE ballot SET submitted_at = $1 WHERE id = $2`, now, ballotID)
		if err != nil {
			return "", false, fmt.Errorf("failed to update ballot: %w", err)
		}
		_, err = tx.Exec(`DELETE FROM ranking WHERE ballot_id = $1`, ballotID)
		if err != nil {
			return "", false, fmt.Errorf("failed to delete old ranking: %w", err)
		}
	default:
		ballotID = auth.GenerateID()
		_, err = tx.Exec(`
			INSERT INTO ballot (id, election_id, voter_key, submitted_at)
			VALUES ($1, $2, $3, $4)
		`, ballotID, electionID, voterKey, now)
		if err != nil {
			return "", false, fmt.Errorf("failed to insert ballot: %w", err)
		}
	}

	for position, candidate := range ranking {
		_, err = tx.Exec(`
			INSERT INTO ranking (ballot_id, position, candidate)
			VALUES ($1, $2, $3)
		`, ballotID, position, candidate)
		if err != nil {
			return "", false, fmt.Errorf("failed to insert ranking: %w", err)
		}
	}

	return ballotID, updated, nil
}

// GetBallot returns the voter's stored ballot.
func (s *Store) GetBallot(electionID, voterKey string) (models.Ballot, error) {
	b := models.Ballot{ElectionID: electionID, VoterKey: voterKey, Ranking: []string{}}
	err := s.db.QueryRow(`
		SELECT id, submitted_at FROM ballot
		WHERE election_id = $1 AND voter_key = $2
	`, electionID, voterKey).Scan(&b.ID, &b.SubmittedAt)

	if err == sql.ErrNoRows {
		return models.Ballot{}, fmt.Errorf("ballot %w", ErrNotFound)
	}
	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to query ballot: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT candidate FROM ranking WHERE ballot_id = $1 ORDER BY position
	`, b.ID)
	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to query ranking: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var candidate string
		if err := rows.Scan(&candidate); err != nil {
			return models.Ballot{}, fmt.Errorf("failed to scan ranking: %w", err)
		}
		b.Ranking = append(b.Ranking, candidate)
	}

	return b, rows.Err()
}

// CountBallots returns the number of ballots cast in the election.
func (s *Store) CountBallots(electionID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM ballot WHERE election_id = $1
	`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return count, nil
}

// Rankings returns every ballot's ranking keyed by voter key.
func (s *Store) Rankings(electionID string) (map[string][]string, error) {
	rows, err := s.db.Query(`
		SELECT b.voter_key, r.candidate
		FROM ballot b
		LEFT JOIN ranking r ON r.ballot_id = b.id
		WHERE b.election_id = $1
		ORDER BY b.voter_key, r.position
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	votes := make(map[string][]string)
	for rows.Next() {
		var voterKey string
		var candidate sql.NullString
		if err := rows.Scan(&voterKey, &candidate); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		if _, ok := votes[voterKey]; !ok {
			votes[voterKey] = []string{}
		}
		if candidate.Valid {
			votes[voterKey] = append(votes[voterKey], candidate.String)
		}
	}

	return votes, rows.Err()
}

// VoteData exports the election in its flat persisted form.
func (s *Store) VoteData(e models.Election) (VoteData, error) {
	votes, err := s.Rankings(e.ID)
	if err != nil {
		return VoteData{}, err
	}
	candidates := append([]string{}, e.Candidates...)
	sort.Strings(candidates)
	return VoteData{Candidates: candidates, Seats: e.Seats, Votes: votes}, nil
}

// LoadElection rebuilds the counting model of a stored election by
// replaying every stored ranking.
func (s *Store) LoadElection(e models.Election) (*stv.Election, error) {
	d, err := s.VoteData(e)
	if err != nil {
		return nil, err
	}
	election, err := d.Election()
	if err != nil {
		slog.Error("stored ballots do not replay", "election_id", e.ID, "error", err)
		return nil, err
	}
	return election, nil
}

// ImportElection stores a new election together with the ballots in d.
// The candidates and seats of d override those of e.
// Imported data must be countable: it needs at least as many candidates as seats.
func (s *Store) ImportElection(e models.Election, d VoteData) error {
	if _, err := d.Election(); err != nil {
		return err
	}
	if len(d.Candidates) < d.Seats {
		return fmt.Errorf("%w: %d seats need at least as many candidates, got %d",
			models.ErrBadRequest, d.Seats, len(d.Candidates))
	}

	e.Candidates = d.Candidates
	e.Seats = d.Seats

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := createElection(tx, e); err != nil {
		return err
	}

	now := time.Now()
	for voterKey, ranking := range d.Votes {
		if _, _, err := saveBallot(tx, e.ID, voterKey, ranking, now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveSnapshot stores an evaluation result.
func (s *Store) SaveSnapshot(snap models.ResultSnapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO result_snapshot (id, election_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, snap.ID, snap.ElectionID, snap.Method, snap.ComputedAt, string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent evaluation of the election.
func (s *Store) LatestSnapshot(electionID string) (models.ResultSnapshot, error) {
	var payload string
	err := s.db.QueryRow(`
		SELECT payload FROM result_snapshot
		WHERE election_id = $1
		ORDER BY computed_at DESC
		LIMIT 1
	`, electionID).Scan(&payload)

	if err == sql.ErrNoRows {
		return models.ResultSnapshot{}, fmt.Errorf("result snapshot %w", ErrNotFound)
	}
	if err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snap models.ResultSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return models.ResultSnapshot{}, fmt.Errorf("failed to parse snapshot payload: %w", err)
	}
	return snap, nil
}
