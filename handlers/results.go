// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ResultsHandler struct {
	engine *election.Engine
	cfg    cliparse.Config
}

func NewResultsHandler(engine *election.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{engine: engine, cfg: cfg}
}

// GetSummary handles GET /election
// Returns the election's headline numbers; open to anyone
func (h *ResultsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Summary()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	summary.Age = humanize.Time(summary.CreatedAt)

	middleware.JSONResponse(w, http.StatusOK, summary)
}

// GetStatus handles GET /election/status
func (h *ResultsHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	phase, err := h.engine.Phase()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{Phase: phase})
}

// GetWinner handles GET /election/winner
// The winning proposal id is 0 until a tally has recorded a winner
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winnerID, winner, err := h.engine.Winner()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		WinningProposalID: winnerID,
		Winner:            winner,
	})
}

// GetProposals handles GET /election/proposals
// Returns all proposals in registration order with live vote counts
func (h *ResultsHandler) GetProposals(w http.ResponseWriter, r *http.Request) {
	proposals, err := h.engine.Proposals()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProposalListResponse{Proposals: proposals})
}

// GetEvents handles GET /election/events?after=N&limit=M
// Pages through the notification feed in sequence order
func (h *ResultsHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	var afterSeq int64
	if after := r.URL.Query().Get("after"); after != "" {
		parsed, err := strconv.ParseInt(after, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "after must be an integer")
			return
		}
		afterSeq = parsed
	}

	var limit int
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	eventList, err := h.engine.Events(afterSeq, limit)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventsResponse{Events: eventList})
}
