// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the single-election voting workflow.

# Engine

Engine is the state machine core. It owns every mutation of election state:

	engine := election.New(db, cfg, notifier)
	electionID, err := engine.Bootstrap()

Each mutating method takes the engine mutex, runs exactly one database
transaction, appends its notification event inside that transaction, and
dispatches the event to subscribers only after commit. Concurrent calls are
serialized; a failed call leaves no trace.

# Workflow Phases

The election advances through six phases, strictly in order:

	RegisteringVoters
	  → ProposalsRegistrationStarted
	  → ProposalsRegistrationEnded
	  → VotingSessionStarted
	  → VotingSessionEnded
	  → VotesTallied

Each transition method requires the exact predecessor phase and reports
ErrInvalidTransition otherwise, leaving the phase unchanged. There are no
backward transitions; ResetElection is the only way back to
RegisteringVoters.

# Phase Gating

Voter-facing operations are open only during their phase:

  - RegisterVoter: RegisteringVoters
  - RegisterProposal: ProposalsRegistrationStarted
  - CastVote: VotingSessionStarted

Out-of-phase calls report ErrPhaseNotOpen. The phase check runs before any
voter-specific check, so a closed phase is reported the same way to
registered and unregistered callers.

# Tallying

CountVotes scans proposals in registration order with a strictly-greater
running maximum, so ties go to the earliest-registered proposal and an
all-zero field records no winner. CompleteTally then moves the workflow to
VotesTallied; it requires VotingSessionEnded.

# Resets

ResetBallots clears proposals and voters' ballots but keeps the whitelist,
phase, and recorded winner. ResetElection additionally clears the whitelist
and returns to RegisteringVoters. Neither reset rewinds the proposal id or
event sequence counters, so ids are never reused across resets.

# Errors

Precondition failures are reported as wrapped sentinel errors
(ErrPhaseNotOpen, ErrNotRegistered, ErrAlreadyVoted, ...) that callers
match with errors.Is. Anything else is an internal failure.
*/
package election
