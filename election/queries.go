// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

// Phase returns the current workflow phase
func (e *Engine) Phase() (string, error) {
	var phase string
	if err := e.db.QueryRow(`SELECT phase FROM election`).Scan(&phase); err != nil {
		return "", fmt.Errorf("failed to load phase: %w", err)
	}
	return phase, nil
}

// Winner returns the recorded winning proposal id and, when the proposal
// still exists, the proposal itself. After a ballot reset the id may refer
// to a deleted proposal; callers get the id with a nil proposal.
func (e *Engine) Winner() (int64, *models.Proposal, error) {
	var winnerID int64
	err := e.db.QueryRow(`SELECT winning_proposal_id FROM election`).Scan(&winnerID)
	if err != nil {
		return models.NoProposal, nil, fmt.Errorf("failed to load winner: %w", err)
	}

	if winnerID == models.NoProposal {
		return models.NoProposal, nil, nil
	}

	var p models.Proposal
	err = e.db.QueryRow(`
		SELECT id, description, proposed_by, vote_count, created_at
		FROM proposal WHERE id = $1
	`, winnerID).Scan(&p.ID, &p.Description, &p.ProposedBy, &p.VoteCount, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return winnerID, nil, nil
	}
	if err != nil {
		return models.NoProposal, nil, fmt.Errorf("failed to load winning proposal: %w", err)
	}

	return winnerID, &p, nil
}

// Proposals returns every registered proposal in registration order
func (e *Engine) Proposals() ([]models.Proposal, error) {
	rows, err := e.db.Query(`
		SELECT id, description, proposed_by, vote_count, created_at
		FROM proposal ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.Proposal{}
	for rows.Next() {
		var p models.Proposal
		if err := rows.Scan(&p.ID, &p.Description, &p.ProposedBy, &p.VoteCount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}

	return proposals, nil
}

// Summary returns a consistent snapshot of the election's headline numbers.
// Takes the engine mutex so the counts all describe the same moment.
func (e *Engine) Summary() (models.SummaryResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s models.SummaryResponse
	err := e.db.QueryRow(`
		SELECT id, phase, winning_proposal_id, created_at FROM election
	`).Scan(&s.ElectionID, &s.Phase, &s.WinningProposalID, &s.CreatedAt)
	if err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to load election: %w", err)
	}

	if err := e.db.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&s.RegisteredVoters); err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to count voters: %w", err)
	}
	if err := e.db.QueryRow(`SELECT COUNT(*) FROM proposal`).Scan(&s.ProposalCount); err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to count proposals: %w", err)
	}
	err = e.db.QueryRow(`SELECT COUNT(*) FROM voter WHERE has_voted = $1`, true).Scan(&s.VotesCast)
	if err != nil {
		return models.SummaryResponse{}, fmt.Errorf("failed to count votes: %w", err)
	}

	return s, nil
}

// VoterByToken resolves a voter token to the voter it was issued to.
// Unknown tokens report ErrNotRegistered.
func (e *Engine) VoterByToken(token string) (models.Voter, error) {
	return e.scanVoter(e.db.QueryRow(`
		SELECT identity, voter_token, has_voted, voted_proposal_id, position, vote_ip_hash, registered_at
		FROM voter WHERE voter_token = $1
	`, token))
}

// VoterByIdentity looks up a voter by identity. Unknown identities report
// ErrNotRegistered.
func (e *Engine) VoterByIdentity(identity string) (models.Voter, error) {
	return e.scanVoter(e.db.QueryRow(`
		SELECT identity, voter_token, has_voted, voted_proposal_id, position, vote_ip_hash, registered_at
		FROM voter WHERE identity = $1
	`, identity))
}

func (e *Engine) scanVoter(row *sql.Row) (models.Voter, error) {
	var v models.Voter
	var ipHash sql.NullString
	err := row.Scan(&v.Identity, &v.VoterToken, &v.HasVoted, &v.VotedProposalID, &v.Position, &ipHash, &v.RegisteredAt)
	if err == sql.ErrNoRows {
		return models.Voter{}, ErrNotRegistered
	}
	if err != nil {
		return models.Voter{}, fmt.Errorf("failed to load voter: %w", err)
	}
	if ipHash.Valid {
		v.VoteIPHash = &ipHash.String
	}
	return v, nil
}

// Events returns the notification feed strictly after afterSeq, oldest
// first. limit <= 0 means the default page size; large limits are capped.
func (e *Engine) Events(afterSeq int64, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	rows, err := e.db.Query(`
		SELECT seq, kind, payload, emitted_at
		FROM election_event WHERE seq > $1 ORDER BY seq LIMIT $2
	`, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	eventList := []models.Event{}
	for rows.Next() {
		var ev models.Event
		var payload string
		if err := rows.Scan(&ev.Seq, &ev.Kind, &payload, &ev.EmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Payload = []byte(payload)
		eventList = append(eventList, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return eventList, nil
}
