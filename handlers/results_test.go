// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/models"
)

func TestGetSummary(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	engine, _ := newTestEngine(t, db, cfg)
	handler := NewResultsHandler(engine, cfg)

	// Two voters, one proposal, one vote cast
	for i, identity := range []string{"alice", "bob"} {
		token := auth.GenerateVoterToken(identity, cfg.VoterTokenSalt)
		hasVoted := i == 0
		votedID := models.NoProposal
		if hasVoted {
			votedID = 1
		}
		_, err := db.Exec(`
			INSERT INTO voter (identity, voter_token, has_voted, voted_proposal_id, position, registered_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, identity, token, hasVoted, votedID, int64(i+1), time.Now())
		if err != nil {
			t.Fatalf("Failed to create test voter: %v", err)
		}
	}
	_, err := db.Exec(`
		INSERT INTO proposal (id, description, proposed_by, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, int64(1), "Coffee", "alice", int64(1), time.Now())
	if err != nil {
		t.Fatalf("Failed to create proposal: %v", err)
	}
	setPhase(t, db, models.PhaseVotingSessionStarted)

	req := httptest.NewRequest("GET", "/election", nil)
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp models.SummaryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if resp.ElectionID != engine.ElectionID() {
		t.Errorf("Expected election_id '%s', got '%s'", engine.ElectionID(), resp.ElectionID)
	}
	if resp.Phase != models.PhaseVotingSessionStarted {
		t.Errorf("Expected phase '%s', got '%s'", models.PhaseVotingSessionStarted, resp.Phase)
	}
	if resp.RegisteredVoters != 2 {
		t.Errorf("Expected 2 registered voters, got %d", resp.RegisteredVoters)
	}
	if resp.ProposalCount != 1 {
		t.Errorf("Expected 1 proposal, got %d", resp.ProposalCount)
	}
	if resp.VotesCast != 1 {
		t.Errorf("Expected 1 vote cast, got %d", resp.VotesCast)
	}
	if resp.WinningProposalID != 0 {
		t.Errorf("Expected winning_proposal_id 0, got %d", resp.WinningProposalID)
	}
	if resp.Age == "" {
		t.Error("Expected a human-readable age")
	}
}

func TestGetStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	engine, _ := newTestEngine(t, db, cfg)
	handler := NewResultsHandler(engine, cfg)

	setPhase(t, db, models.PhaseProposalsRegistrationEnded)

	req := httptest.NewRequest("GET", "/election/status", nil)
	w := httptest.NewRecorder()

	handler.GetStatus(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp models.StatusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Phase != models.PhaseProposalsRegistrationEnded {
		t.Errorf("Expected phase '%s', got '%s'", models.PhaseProposalsRegistrationEnded, resp.Phase)
	}
}

func TestGetWinner(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	engine, _ := newTestEngine(t, db, cfg)
	handler := NewResultsHandler(engine, cfg)

	// Before any tally the winning id is the zero sentinel
	req := httptest.NewRequest("GET", "/election/winner", nil)
	w := httptest.NewRecorder()

	handler.GetWinner(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp models.TallyResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.WinningProposalID != 0 {
		t.Errorf("Expected winning_proposal_id 0 before tally, got %d", resp.WinningProposalID)
	}
	if resp.Winner != nil {
		t.Error("Expected no winner details before tally")
	}

	// Record a winner and ask again
	_, err := db.Exec(`
		INSERT INTO proposal (id, description, proposed_by, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, int64(1), "Coffee", "alice", int64(3), time.Now())
	if err != nil {
		t.Fatalf("Failed to create proposal: %v", err)
	}
	if _, err := db.Exec(`UPDATE election SET winning_proposal_id = $1`, int64(1)); err != nil {
		t.Fatalf("Failed to record winner: %v", err)
	}

	req = httptest.NewRequest("GET", "/election/winner", nil)
	w = httptest.NewRecorder()

	handler.GetWinner(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.WinningProposalID != 1 {
		t.Errorf("Expected winning_proposal_id 1, got %d", resp.WinningProposalID)
	}
	if resp.Winner == nil {
		t.Fatal("Expected winner details")
	}
	if resp.Winner.Description != "Coffee" {
		t.Errorf("Expected winner 'Coffee', got '%s'", resp.Winner.Description)
	}
	if resp.Winner.VoteCount != 3 {
		t.Errorf("Expected winner vote_count 3, got %d", resp.Winner.VoteCount)
	}
}

func TestGetProposals(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	engine, _ := newTestEngine(t, db, cfg)
	handler := NewResultsHandler(engine, cfg)

	for i, p := range []struct {
		description string
		votes       int64
	}{
		{"Coffee", 2},
		{"Tea", 0},
		{"Water", 1},
	} {
		_, err := db.Exec(`
			INSERT INTO proposal (id, description, proposed_by, vote_count, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, int64(i+1), p.description, "alice", p.votes, time.Now())
		if err != nil {
			t.Fatalf("Failed to create proposal: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/election/proposals", nil)
	w := httptest.NewRecorder()

	handler.GetProposals(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp models.ProposalListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Proposals) != 3 {
		t.Fatalf("Expected 3 proposals, got %d", len(resp.Proposals))
	}

	// Registration order, with live counts
	expected := []struct {
		id          int64
		description string
		votes       int64
	}{
		{1, "Coffee", 2},
		{2, "Tea", 0},
		{3, "Water", 1},
	}
	for i, want := range expected {
		got := resp.Proposals[i]
		if got.ID != want.id {
			t.Errorf("Expected proposal %d at index %d, got %d", want.id, i, got.ID)
		}
		if got.Description != want.description {
			t.Errorf("Expected description '%s', got '%s'", want.description, got.Description)
		}
		if got.VoteCount != want.votes {
			t.Errorf("Expected vote_count %d, got %d", want.votes, got.VoteCount)
		}
	}
}

func TestGetProposalsEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	engine, _ := newTestEngine(t, db, cfg)
	handler := NewResultsHandler(engine, cfg)

	req := httptest.NewRequest("GET", "/election/proposals", nil)
	w := httptest.NewRecorder()

	handler.GetProposals(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp models.ProposalListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Proposals) != 0 {
		t.Errorf("Expected 0 proposals, got %d", len(resp.Proposals))
	}
}

func TestGetEvents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	engine, _ := newTestEngine(t, db, cfg)
	handler := NewResultsHandler(engine, cfg)

	// Generate a few feed entries
	for _, identity := range []string{"alice", "bob", "carol"} {
		if _, err := engine.RegisterVoter(identity); err != nil {
			t.Fatalf("Failed to register voter: %v", err)
		}
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedSeqs   []int64
	}{
		{"full feed", "", http.StatusOK, []int64{1, 2, 3}},
		{"after cursor", "?after=1", http.StatusOK, []int64{2, 3}},
		{"after cursor with limit", "?after=1&limit=1", http.StatusOK, []int64{2}},
		{"past the end", "?after=3", http.StatusOK, []int64{}},
		{"bad after", "?after=abc", http.StatusBadRequest, nil},
		{"bad limit", "?limit=abc", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/election/events"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.GetEvents(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.EventsResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if len(resp.Events) != len(tt.expectedSeqs) {
				t.Fatalf("Expected %d events, got %d", len(tt.expectedSeqs), len(resp.Events))
			}
			for i, want := range tt.expectedSeqs {
				if resp.Events[i].Seq != want {
					t.Errorf("Expected seq %d at index %d, got %d", want, i, resp.Events[i].Seq)
				}
				if resp.Events[i].Kind != models.EventVoterRegistered {
					t.Errorf("Expected kind '%s', got '%s'", models.EventVoterRegistered, resp.Events[i].Kind)
				}
			}
		})
	}
}
