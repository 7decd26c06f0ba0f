// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - election: Single-row workflow state (phase, winner, id counters)
  - voter: Registered voter whitelist with per-cycle vote flags
  - proposal: Proposals collected during the registration window
  - election_event: Append-only notification feed

# Portability

The same DDL runs on PostgreSQL (github.com/lib/pq) and SQLite
(modernc.org/sqlite). Rules observed throughout the codebase:

  - $1..$n placeholders in ascending first-use order
  - timestamps bound from Go, never NOW()
  - BIGINT numeric columns, scanned as int64
  - id counters kept in the election row instead of SERIAL

# Counters

Proposal ids and event sequence numbers are allocated from
election.next_proposal_id and election.next_event_seq under the engine's
transaction. Neither counter is ever decreased or reset, so proposal ids
stay strictly increasing across ballot resets and full election resets.
*/
package db
