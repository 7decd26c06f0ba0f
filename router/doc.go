// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(engine, cfg)

# Endpoints

Health:

	GET /health

Election administration (requires X-Admin-Key):

	POST /election/voters          - Register a voter
	POST /election/proposals/open  - Open proposal registration
	POST /election/proposals/close - Close proposal registration
	POST /election/voting/open     - Open the voting session
	POST /election/voting/close    - Close the voting session
	POST /election/tally           - Count votes and record the winner
	POST /election/tally/complete  - Advance to VotesTallied
	POST /election/reset           - Clear proposals and ballots
	POST /election/new             - Full reset for a new election cycle

Voter operations (requires X-Voter-Token):

	POST /election/proposals - Submit a proposal
	POST /election/votes     - Cast a vote
	GET  /election/voters/me - Own registration and ballot state

Public reads:

	GET /election           - Election summary
	GET /election/status    - Current workflow phase
	GET /election/winner    - Winning proposal id (0 until tallied)
	GET /election/proposals - All proposals with vote counts
	GET /election/events    - Notification feed (?after=seq&limit=n)

# Handler Initialization

The router creates handler instances with dependency injection:

	adminHandler := handlers.NewAdminHandler(engine, cfg)
	votingHandler := handlers.NewVotingHandler(engine, cfg)
	resultsHandler := handlers.NewResultsHandler(engine, cfg)

All handlers receive the election engine and configuration.
*/
package router
