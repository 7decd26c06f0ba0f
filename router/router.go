// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
)

func NewRouter(engine *election.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(engine, cfg)
	votingHandler := handlers.NewVotingHandler(engine, cfg)
	resultsHandler := handlers.NewResultsHandler(engine, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election administration (requires X-Admin-Key)
	mux.HandleFunc("POST /election/voters", middleware.WithLogging(adminHandler.RegisterVoter))
	mux.HandleFunc("POST /election/proposals/open", middleware.WithLogging(adminHandler.OpenProposals))
	mux.HandleFunc("POST /election/proposals/close", middleware.WithLogging(adminHandler.CloseProposals))
	mux.HandleFunc("POST /election/voting/open", middleware.WithLogging(adminHandler.OpenVoting))
	mux.HandleFunc("POST /election/voting/close", middleware.WithLogging(adminHandler.CloseVoting))
	mux.HandleFunc("POST /election/tally", middleware.WithLogging(adminHandler.Tally))
	mux.HandleFunc("POST /election/tally/complete", middleware.WithLogging(adminHandler.CompleteTally))
	mux.HandleFunc("POST /election/reset", middleware.WithLogging(adminHandler.ResetBallots))
	mux.HandleFunc("POST /election/new", middleware.WithLogging(adminHandler.ResetElection))

	// Voter operations (requires X-Voter-Token)
	mux.HandleFunc("POST /election/proposals", middleware.WithLogging(votingHandler.RegisterProposal))
	mux.HandleFunc("POST /election/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /election/voters/me", middleware.WithLogging(votingHandler.GetMe))

	// Public reads
	mux.HandleFunc("GET /election", middleware.WithLogging(resultsHandler.GetSummary))
	mux.HandleFunc("GET /election/status", middleware.WithLogging(resultsHandler.GetStatus))
	mux.HandleFunc("GET /election/winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /election/proposals", middleware.WithLogging(resultsHandler.GetProposals))
	mux.HandleFunc("GET /election/events", middleware.WithLogging(resultsHandler.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
