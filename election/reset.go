// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// ResetBallots clears every proposal and every voter's ballot while keeping
// the voter whitelist, the current phase, and the recorded winner intact.
// Proposal ids are never reused: the id counter keeps climbing across
// resets, so a stale id held from before the reset can never alias a
// proposal registered after it.
func (e *Engine) ResetBallots() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM proposal`); err != nil {
		return fmt.Errorf("failed to clear proposals: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE voter SET has_voted = $1, voted_proposal_id = $2, vote_ip_hash = NULL`,
		false, models.NoProposal,
	)
	if err != nil {
		return fmt.Errorf("failed to clear ballots: %w", err)
	}

	ev, err := appendEvent(tx, models.EventBallotsCleared, nil, now)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("ballots reset", "election_id", e.id)

	return nil
}

// ResetElection wipes proposals, ballots, and the voter whitelist, then
// returns the workflow to the voter registration phase. The proposal id
// and event sequence counters are not reset: ids stay unique across the
// whole life of the deployment.
func (e *Engine) ResetElection() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM proposal`); err != nil {
		return fmt.Errorf("failed to clear proposals: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM voter`); err != nil {
		return fmt.Errorf("failed to clear voters: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE election SET phase = $1, winning_proposal_id = $2, updated_at = $3`,
		models.PhaseRegisteringVoters, models.NoProposal, now,
	)
	if err != nil {
		return fmt.Errorf("failed to reset election: %w", err)
	}

	ev, err := appendEvent(tx, models.EventElectionReset, nil, now)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("election reset", "election_id", e.id)

	return nil
}
