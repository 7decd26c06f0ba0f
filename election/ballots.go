// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// RegisterProposal records a proposal from a registered voter while the
// proposal window is open. The proposal id comes from a counter that only
// ever increases: ids stay unique even across resets. There is no limit on
// proposals per voter and descriptions are not deduplicated.
func (e *Engine) RegisterProposal(identity, description string) (models.Proposal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Phase check comes first: a closed window rejects everyone alike
	phase, err := currentPhase(tx)
	if err != nil {
		return models.Proposal{}, err
	}
	if phase != models.PhaseProposalsRegistrationStarted {
		return models.Proposal{}, fmt.Errorf("%w: proposals are only accepted during %s, current phase is %s", ErrPhaseNotOpen, models.PhaseProposalsRegistrationStarted, phase)
	}

	var registered bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM voter WHERE identity = $1)`, identity).Scan(&registered)
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to check registry: %w", err)
	}
	if !registered {
		return models.Proposal{}, fmt.Errorf("%w: %s", ErrNotRegistered, identity)
	}

	var id int64
	if err := tx.QueryRow(`SELECT next_proposal_id FROM election`).Scan(&id); err != nil {
		return models.Proposal{}, fmt.Errorf("failed to allocate proposal id: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO proposal (id, description, proposed_by, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, description, identity, 0, now)
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to insert proposal: %w", err)
	}

	_, err = tx.Exec(`UPDATE election SET next_proposal_id = $1, updated_at = $2`, id+1, now)
	if err != nil {
		return models.Proposal{}, fmt.Errorf("failed to advance proposal id: %w", err)
	}

	ev, err := appendEvent(tx, models.EventProposalRegistered, models.ProposalRegisteredPayload{ProposalID: id}, now)
	if err != nil {
		return models.Proposal{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Proposal{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("proposal registered", "proposal_id", id, "proposed_by", identity)

	return models.Proposal{
		ID:          id,
		Description: description,
		ProposedBy:  identity,
		VoteCount:   0,
		CreatedAt:   now,
	}, nil
}

// CastVote records one vote from a registered voter for an existing
// proposal while the voting window is open. The proposal's count and the
// voter's own record are updated in the same transaction, so a voter whose
// vote landed can never vote again. ipHash is an optional audit value
// (pass "" when unknown).
func (e *Engine) CastVote(identity string, proposalID int64, ipHash string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	phase, err := currentPhase(tx)
	if err != nil {
		return err
	}
	if phase != models.PhaseVotingSessionStarted {
		return fmt.Errorf("%w: votes are only accepted during %s, current phase is %s", ErrPhaseNotOpen, models.PhaseVotingSessionStarted, phase)
	}

	var hasVoted bool
	err = tx.QueryRow(`SELECT has_voted FROM voter WHERE identity = $1`, identity).Scan(&hasVoted)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrNotRegistered, identity)
	}
	if err != nil {
		return fmt.Errorf("failed to load voter: %w", err)
	}
	if hasVoted {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, identity)
	}

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM proposal WHERE id = $1)`, proposalID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check proposal: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", ErrInvalidProposal, proposalID)
	}

	_, err = tx.Exec(`UPDATE proposal SET vote_count = vote_count + 1 WHERE id = $1`, proposalID)
	if err != nil {
		return fmt.Errorf("failed to count vote: %w", err)
	}

	// The stored voter row is the one mutated; has_voted and
	// voted_proposal_id are durable the moment this commits
	var ip sql.NullString
	if ipHash != "" {
		ip = sql.NullString{String: ipHash, Valid: true}
	}
	_, err = tx.Exec(`
		UPDATE voter SET has_voted = $1, voted_proposal_id = $2, vote_ip_hash = $3 WHERE identity = $4
	`, true, proposalID, ip, identity)
	if err != nil {
		return fmt.Errorf("failed to mark voter: %w", err)
	}

	ev, err := appendEvent(tx, models.EventVoted, models.VotedPayload{Identity: identity, ProposalID: proposalID}, now)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("vote cast", "identity", identity, "proposal_id", proposalID)

	return nil
}
