// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestWorkflow_FullLifecycle(t *testing.T) {
	engine, conn := newTestEngine(t)

	steps := []struct {
		name    string
		advance func() (models.PhaseChangeResponse, error)
		from    string
		to      string
	}{
		{"open proposals", engine.StartProposalsRegistration, models.PhaseRegisteringVoters, models.PhaseProposalsRegistrationStarted},
		{"close proposals", engine.EndProposalsRegistration, models.PhaseProposalsRegistrationStarted, models.PhaseProposalsRegistrationEnded},
		{"open voting", engine.StartVotingSession, models.PhaseProposalsRegistrationEnded, models.PhaseVotingSessionStarted},
		{"close voting", engine.EndVotingSession, models.PhaseVotingSessionStarted, models.PhaseVotingSessionEnded},
		{"complete tally", engine.CompleteTally, models.PhaseVotingSessionEnded, models.PhaseVotesTallied},
	}

	for _, step := range steps {
		resp, err := step.advance()
		if err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
		if resp.PreviousPhase != step.from {
			t.Errorf("%s: expected previous phase %s, got %s", step.name, step.from, resp.PreviousPhase)
		}
		if resp.CurrentPhase != step.to {
			t.Errorf("%s: expected current phase %s, got %s", step.name, step.to, resp.CurrentPhase)
		}

		var phase string
		if err := conn.QueryRow(`SELECT phase FROM election`).Scan(&phase); err != nil {
			t.Fatalf("Failed to query phase: %v", err)
		}
		if phase != step.to {
			t.Errorf("%s: expected stored phase %s, got %s", step.name, step.to, phase)
		}
	}
}

func TestWorkflow_OutOfOrderTransitionFails(t *testing.T) {
	testCases := []struct {
		name       string
		startPhase string
		advance    string
	}{
		{"close proposals before opening", models.PhaseRegisteringVoters, "EndProposalsRegistration"},
		{"open voting before proposals close", models.PhaseProposalsRegistrationStarted, "StartVotingSession"},
		{"close voting before opening", models.PhaseProposalsRegistrationEnded, "EndVotingSession"},
		{"complete tally before voting closes", models.PhaseVotingSessionStarted, "CompleteTally"},
		{"reopen proposals after voting", models.PhaseVotingSessionEnded, "StartProposalsRegistration"},
		{"advance past terminal phase", models.PhaseVotesTallied, "EndVotingSession"},
		{"skip ahead two phases", models.PhaseRegisteringVoters, "StartVotingSession"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine, conn := newTestEngine(t)
			testutil.SetPhase(t, conn, tc.startPhase)

			transitions := map[string]func() (models.PhaseChangeResponse, error){
				"StartProposalsRegistration": engine.StartProposalsRegistration,
				"EndProposalsRegistration":   engine.EndProposalsRegistration,
				"StartVotingSession":         engine.StartVotingSession,
				"EndVotingSession":           engine.EndVotingSession,
				"CompleteTally":              engine.CompleteTally,
			}

			_, err := transitions[tc.advance]()
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Expected ErrInvalidTransition, got %v", err)
			}

			// The phase must be untouched after a rejected transition
			var phase string
			if err := conn.QueryRow(`SELECT phase FROM election`).Scan(&phase); err != nil {
				t.Fatalf("Failed to query phase: %v", err)
			}
			if phase != tc.startPhase {
				t.Errorf("Expected phase to stay %s, got %s", tc.startPhase, phase)
			}
		})
	}
}

func TestWorkflow_TransitionEmitsPhaseChangeEvent(t *testing.T) {
	engine, conn := newTestEngine(t)

	if _, err := engine.StartProposalsRegistration(); err != nil {
		t.Fatalf("StartProposalsRegistration failed: %v", err)
	}

	var kind, payload string
	err := conn.QueryRow(`SELECT kind, payload FROM election_event WHERE seq = 1`).Scan(&kind, &payload)
	if err != nil {
		t.Fatalf("Failed to query event: %v", err)
	}

	if kind != models.EventWorkflowStatusChange {
		t.Errorf("Expected kind %s, got %s", models.EventWorkflowStatusChange, kind)
	}

	var body models.WorkflowStatusChangePayload
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		t.Fatalf("Failed to parse payload: %v", err)
	}
	if body.PreviousPhase != models.PhaseRegisteringVoters {
		t.Errorf("Expected previous phase %s, got %s", models.PhaseRegisteringVoters, body.PreviousPhase)
	}
	if body.CurrentPhase != models.PhaseProposalsRegistrationStarted {
		t.Errorf("Expected current phase %s, got %s", models.PhaseProposalsRegistrationStarted, body.CurrentPhase)
	}
}

func TestWorkflow_FailedTransitionEmitsNoEvent(t *testing.T) {
	engine, conn := newTestEngine(t)

	if _, err := engine.EndVotingSession(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Expected ErrInvalidTransition, got %v", err)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM election_event`).Scan(&count); err != nil {
		t.Fatalf("Failed to count events: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no events after failed transition, got %d", count)
	}
}
