// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/models"
)

// CountVotes scans all proposals and records the winner. Callable in any
// phase; meaningful once the voting session has ended.
//
// Winner selection: proposals are walked in ascending id (registration)
// order with a running maximum that starts at zero, using a strictly-greater
// comparison. Ties therefore go to the earliest-registered proposal, and a
// field where every proposal has zero votes records NoProposal - "no
// winner" - rather than any real id.
func (e *Engine) CountVotes() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := time.Now()

	tx, err := e.db.Begin()
	if err != nil {
		return models.NoProposal, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT id, vote_count FROM proposal ORDER BY id`)
	if err != nil {
		return models.NoProposal, fmt.Errorf("failed to scan proposals: %w", err)
	}
	defer rows.Close()

	winner := models.NoProposal
	var max int64
	for rows.Next() {
		var id, count int64
		if err := rows.Scan(&id, &count); err != nil {
			return models.NoProposal, fmt.Errorf("failed to scan proposal: %w", err)
		}
		if count > max {
			max = count
			winner = id
		}
	}
	if err := rows.Err(); err != nil {
		return models.NoProposal, fmt.Errorf("failed to scan proposals: %w", err)
	}

	_, err = tx.Exec(`UPDATE election SET winning_proposal_id = $1, updated_at = $2`, winner, now)
	if err != nil {
		return models.NoProposal, fmt.Errorf("failed to record winner: %w", err)
	}

	ev, err := appendEvent(tx, models.EventVotesCounted, models.VotesCountedPayload{WinningProposalID: winner}, now)
	if err != nil {
		return models.NoProposal, err
	}

	if err := tx.Commit(); err != nil {
		return models.NoProposal, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.publish(ev)
	slog.Info("votes counted", "winning_proposal_id", winner, "top_count", max)

	return winner, nil
}
