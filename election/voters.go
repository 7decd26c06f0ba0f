// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/models"
)

// RegisterVoter whitelists an identity and issues its voter token.
// Registration is only open while the phase is RegisteringVoters, and an
// identity can be registered at most once. Voter records are never deleted
// except by a full election reset.
func (e *Engine) RegisterVoter(identity string) (models.Voter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	phase, err := currentPhase(tx)
	if err != nil {
		return models.Voter{}, err
	}
	if phase != models.PhaseRegisteringVoters {
		return models.Voter{}, fmt.Errorf("%w: voter registration is only open during %s, current phase is %s", ErrPhaseNotOpen, models.PhaseRegisteringVoters, phase)
	}

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM voter WHERE identity = $1)`, identity).Scan(&exists)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to check registry: %w", err)
	}
	if exists {
		return models.Voter{}, fmt.Errorf("%w: %s", ErrAlreadyRegistered, identity)
	}

	// Position records registration order so per-voter flags can be walked
	// and reset deterministically
	var position int64
	if err := tx.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&position); err != nil {
		return models.Voter{}, fmt.Errorf("failed to count registry: %w", err)
	}
	position++

	token := auth.GenerateVoterToken(identity, e.cfg.VoterTokenSalt)

	_, err = tx.Exec(`
		INSERT INTO voter (identity, voter_token, has_voted, voted_proposal_id, position, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, identity, token, false, models.NoProposal, position, now)
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to insert voter: %w", err)
	}

	ev, err := appendEvent(tx, models.EventVoterRegistered, models.VoterRegisteredPayload{Identity: identity}, now)
	if err != nil {
		return models.Voter{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Voter{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("voter registered", "identity", identity, "position", position)

	return models.Voter{
		Identity:        identity,
		VoterToken:      token,
		HasVoted:        false,
		VotedProposalID: models.NoProposal,
		Position:        position,
		RegisteredAt:    now,
	}, nil
}
