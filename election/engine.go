// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/events"
	"github.com/danielhkuo/ballotbox/models"
)

// Engine is the voting session state machine. It is the only writer of
// election state: every mutating operation takes the engine mutex, runs one
// transaction, appends its notification row inside that transaction, and
// dispatches to in-process subscribers only after commit. Callers never see
// a partially applied operation.
type Engine struct {
	mu       sync.Mutex
	db       *sql.DB
	cfg      cliparse.Config
	notifier *events.Notifier
	id       string
}

func New(db *sql.DB, cfg cliparse.Config, notifier *events.Notifier) *Engine {
	return &Engine{db: db, cfg: cfg, notifier: notifier}
}

// Bootstrap loads the election row, creating it when the database is fresh.
// Returns the election ID (the basis of the admin key).
func (e *Engine) Bootstrap() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var id string
	err := e.db.QueryRow(`SELECT id FROM election`).Scan(&id)
	if err == nil {
		e.id = id
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to load election: %w", err)
	}

	// Fresh database: mint the election
	id = uuid.NewString()
	now := time.Now()
	_, err = e.db.Exec(`
		INSERT INTO election (id, phase, winning_proposal_id, next_proposal_id, next_event_seq, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, models.PhaseRegisteringVoters, models.NoProposal, 1, 1, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to create election: %w", err)
	}

	e.id = id
	slog.Info("election created", "election_id", id, "phase", models.PhaseRegisteringVoters)

	return id, nil
}

// ElectionID returns the bootstrapped election ID
func (e *Engine) ElectionID() string {
	return e.id
}

// currentPhase reads the workflow phase inside tx
func currentPhase(tx *sql.Tx) (string, error) {
	var phase string
	if err := tx.QueryRow(`SELECT phase FROM election`).Scan(&phase); err != nil {
		return "", fmt.Errorf("failed to load phase: %w", err)
	}
	return phase, nil
}

// appendEvent writes the notification row for a mutation, inside the
// mutation's own transaction. The row rolls back with the mutation, which
// keeps the feed one-to-one with successful calls.
func appendEvent(tx *sql.Tx, kind string, payload interface{}, now time.Time) (models.Event, error) {
	var seq int64
	if err := tx.QueryRow(`SELECT next_event_seq FROM election`).Scan(&seq); err != nil {
		return models.Event{}, fmt.Errorf("failed to allocate event seq: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to encode event payload: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO election_event (seq, kind, payload, emitted_at)
		VALUES ($1, $2, $3, $4)
	`, seq, kind, string(body), now)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to append event: %w", err)
	}

	_, err = tx.Exec(`UPDATE election SET next_event_seq = $1, updated_at = $2`, seq+1, now)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to advance event seq: %w", err)
	}

	return models.Event{Seq: seq, Kind: kind, Payload: body, EmittedAt: now}, nil
}

// publish dispatches a committed event to in-process subscribers
func (e *Engine) publish(ev models.Event) {
	if e.notifier != nil {
		e.notifier.Notify(ev)
	}
}
