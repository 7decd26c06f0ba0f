// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// StartProposalsRegistration opens the proposal submission window.
// Requires phase RegisteringVoters.
func (e *Engine) StartProposalsRegistration() (models.PhaseChangeResponse, error) {
	return e.advancePhase(models.PhaseRegisteringVoters, models.PhaseProposalsRegistrationStarted)
}

// EndProposalsRegistration closes the proposal submission window.
// Requires phase ProposalsRegistrationStarted.
func (e *Engine) EndProposalsRegistration() (models.PhaseChangeResponse, error) {
	return e.advancePhase(models.PhaseProposalsRegistrationStarted, models.PhaseProposalsRegistrationEnded)
}

// StartVotingSession opens the voting window.
// Requires phase ProposalsRegistrationEnded.
func (e *Engine) StartVotingSession() (models.PhaseChangeResponse, error) {
	return e.advancePhase(models.PhaseProposalsRegistrationEnded, models.PhaseVotingSessionStarted)
}

// EndVotingSession closes the voting window.
// Requires phase VotingSessionStarted.
func (e *Engine) EndVotingSession() (models.PhaseChangeResponse, error) {
	return e.advancePhase(models.PhaseVotingSessionStarted, models.PhaseVotingSessionEnded)
}

// CompleteTally marks the election as tallied, the terminal phase until a
// reset. Requires phase VotingSessionEnded.
func (e *Engine) CompleteTally() (models.PhaseChangeResponse, error) {
	return e.advancePhase(models.PhaseVotingSessionEnded, models.PhaseVotesTallied)
}

// advancePhase performs one forward transition of the workflow. The current
// phase must exactly match the expected predecessor, otherwise the election
// is left untouched and ErrInvalidTransition is reported.
func (e *Engine) advancePhase(from, to string) (models.PhaseChangeResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return models.PhaseChangeResponse{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := currentPhase(tx)
	if err != nil {
		return models.PhaseChangeResponse{}, err
	}
	if current != from {
		return models.PhaseChangeResponse{}, fmt.Errorf("%w: %s requires phase %s, current phase is %s", ErrInvalidTransition, to, from, current)
	}

	if _, err := tx.Exec(`UPDATE election SET phase = $1, updated_at = $2`, to, now); err != nil {
		return models.PhaseChangeResponse{}, fmt.Errorf("failed to update phase: %w", err)
	}

	ev, err := appendEvent(tx, models.EventWorkflowStatusChange, models.WorkflowStatusChangePayload{
		PreviousPhase: current,
		CurrentPhase:  to,
	}, now)
	if err != nil {
		return models.PhaseChangeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.PhaseChangeResponse{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("workflow phase advanced", "previous", current, "current", to)

	return models.PhaseChangeResponse{PreviousPhase: current, CurrentPhase: to}, nil
}
