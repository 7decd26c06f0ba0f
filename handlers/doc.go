// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballotbox API.

# Handler Types

Each handler is a struct holding the election engine and config:

  - AdminHandler: voter registration, phase transitions, tally, resets
  - VotingHandler: proposal submission and vote casting
  - ResultsHandler: election info, winner, proposals, event feed

Handlers are created via constructor functions that accept the engine and
Config:

	adminHandler := handlers.NewAdminHandler(engine, cfg)

# Election Lifecycle

The election advances through six phases, driven by admin endpoints:

	POST /election/voters          → RegisterVoter (RegisteringVoters only)
	POST /election/proposals/open  → OpenProposals
	POST /election/proposals/close → CloseProposals
	POST /election/voting/open     → OpenVoting
	POST /election/voting/close    → CloseVoting
	POST /election/tally           → Tally (computes the winner)
	POST /election/tally/complete  → CompleteTally (phase VotesTallied)
	POST /election/reset           → ResetBallots (keep whitelist and phase)
	POST /election/new             → ResetElection (fresh cycle)

Admin operations require the X-Admin-Key header. The key is the HMAC of
the election id under the admin salt, printed at startup.

# Voting Flow

Registered voters act with the token issued at registration:

	POST /election/proposals → RegisterProposal (ProposalsRegistrationStarted)
	POST /election/votes     → CastVote (VotingSessionStarted)
	GET  /election/voters/me → GetMe

Voter operations require the X-Voter-Token header.

# Error Mapping

Engine precondition errors map onto HTTP statuses in errors.go: wrong
phase, double registration, double voting, and out-of-order transitions
are 409; unknown identity is 403; unknown proposal id is 404. The
response body carries the violated precondition verbatim.
*/
package handlers
