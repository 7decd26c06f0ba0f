// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the dialect shared by PostgreSQL (lib/pq) and
// SQLite (modernc.org/sqlite): no SERIAL, no NOW(), BIGINT for numeric
// columns, timestamps bound from Go.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Election (single row: the one live election this service runs)
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    phase TEXT NOT NULL DEFAULT 'RegisteringVoters' CHECK (phase IN (
        'RegisteringVoters',
        'ProposalsRegistrationStarted',
        'ProposalsRegistrationEnded',
        'VotingSessionStarted',
        'VotingSessionEnded',
        'VotesTallied'
    )),
    winning_proposal_id BIGINT NOT NULL DEFAULT 0,
    next_proposal_id BIGINT NOT NULL DEFAULT 1,
    next_event_seq BIGINT NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Voters (the whitelist; position records registration order)
CREATE TABLE IF NOT EXISTS voter (
    identity TEXT PRIMARY KEY,
    voter_token TEXT NOT NULL UNIQUE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_proposal_id BIGINT NOT NULL DEFAULT 0,
    position BIGINT NOT NULL,
    vote_ip_hash TEXT,
    registered_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_token ON voter(voter_token);
CREATE INDEX IF NOT EXISTS idx_voter_position ON voter(position);

-- Proposals (ids come from election.next_proposal_id, never reused)
CREATE TABLE IF NOT EXISTS proposal (
    id BIGINT PRIMARY KEY,
    description TEXT NOT NULL,
    proposed_by TEXT NOT NULL,
    vote_count BIGINT NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    created_at TIMESTAMP NOT NULL
);

-- Notification feed (append-only, seq from election.next_event_seq)
CREATE TABLE IF NOT EXISTS election_event (
    seq BIGINT PRIMARY KEY,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    emitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_election_event_kind ON election_event(kind);
`
