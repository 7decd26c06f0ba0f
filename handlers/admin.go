// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type AdminHandler struct {
	engine *election.Engine
	cfg    cliparse.Config
}

func NewAdminHandler(engine *election.Engine, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{engine: engine, cfg: cfg}
}

// authorized validates the X-Admin-Key header against the election's
// derived admin key. Writes the 401 itself so callers just return.
func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(h.engine.ElectionID(), adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// RegisterVoter handles POST /election/voters
func (h *AdminHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Identity == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "identity is required")
		return
	}

	voter, err := h.engine.RegisterVoter(req.Identity)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		Identity:   voter.Identity,
		VoterToken: voter.VoterToken,
	})
}

// OpenProposals handles POST /election/proposals/open
func (h *AdminHandler) OpenProposals(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp, err := h.engine.StartProposalsRegistration()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CloseProposals handles POST /election/proposals/close
func (h *AdminHandler) CloseProposals(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp, err := h.engine.EndProposalsRegistration()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// OpenVoting handles POST /election/voting/open
func (h *AdminHandler) OpenVoting(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp, err := h.engine.StartVotingSession()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// CloseVoting handles POST /election/voting/close
func (h *AdminHandler) CloseVoting(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp, err := h.engine.EndVotingSession()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Tally handles POST /election/tally
func (h *AdminHandler) Tally(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	winnerID, err := h.engine.CountVotes()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	// Re-read for the winning proposal's details; nil when no winner
	_, winner, err := h.engine.Winner()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		WinningProposalID: winnerID,
		Winner:            winner,
	})
}

// CompleteTally handles POST /election/tally/complete
func (h *AdminHandler) CompleteTally(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	resp, err := h.engine.CompleteTally()
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ResetBallots handles POST /election/reset
func (h *AdminHandler) ResetBallots(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	if err := h.engine.ResetBallots(); err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message: "Proposals and ballots cleared",
	})
}

// ResetElection handles POST /election/new
func (h *AdminHandler) ResetElection(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	if err := h.engine.ResetElection(); err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{
		Message: "Election reset to voter registration",
	})
}
