// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
)

// SetupTestDB opens a fresh in-memory database with the full schema.
// Every call returns an isolated database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection only: the pool would otherwise hand out separate
	// empty :memory: databases.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    ":memory:",
		DatabaseType:   "sqlite",
		AdminKeySalt:   "test-admin-salt",
		VoterTokenSalt: "test-voter-salt",
	}
}

// SeedElection creates the election row in the given phase and returns its
// ID and admin key
func SeedElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, phase string) (electionID, adminKey string) {
	t.Helper()

	electionID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO election (id, phase, winning_proposal_id, next_proposal_id, next_event_seq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, electionID, phase, models.NoProposal, 1, 1, now, now)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID, adminKey
}

// SetPhase moves the seeded election to the given phase directly
func SetPhase(t *testing.T, conn *sql.DB, phase string) {
	t.Helper()

	_, err := conn.Exec(`UPDATE election SET phase = $1, updated_at = $2`, phase, time.Now())
	if err != nil {
		t.Fatalf("Failed to set phase: %v", err)
	}
}

// CreateTestVoter registers a voter directly and returns the voter token
func CreateTestVoter(t *testing.T, conn *sql.DB, cfg cliparse.Config, identity string) string {
	t.Helper()

	var position int64
	if err := conn.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&position); err != nil {
		t.Fatalf("Failed to count voters: %v", err)
	}

	token := auth.GenerateVoterToken(identity, cfg.VoterTokenSalt)
	_, err := conn.Exec(`
		INSERT INTO voter (identity, voter_token, has_voted, voted_proposal_id, position, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, identity, token, false, models.NoProposal, position+1, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return token
}

// CreateTestProposal inserts a proposal through the id counter, keeping ids
// monotonic the way the engine allocates them, and returns the id
func CreateTestProposal(t *testing.T, conn *sql.DB, description, proposedBy string, voteCount int64) int64 {
	t.Helper()

	var id int64
	if err := conn.QueryRow(`SELECT next_proposal_id FROM election`).Scan(&id); err != nil {
		t.Fatalf("Failed to allocate proposal id: %v", err)
	}

	_, err := conn.Exec(`
		INSERT INTO proposal (id, description, proposed_by, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, description, proposedBy, voteCount, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}

	_, err = conn.Exec(`UPDATE election SET next_proposal_id = $1`, id+1)
	if err != nil {
		t.Fatalf("Failed to advance proposal id: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
