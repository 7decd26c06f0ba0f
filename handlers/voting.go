// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type VotingHandler struct {
	engine *election.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(engine *election.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: engine, cfg: cfg}
}

// authenticate resolves the X-Voter-Token header to a registered voter.
// Token problems are authentication failures (401); the engine's own
// phase and registration checks still run on the authenticated identity.
func (h *VotingHandler) authenticate(w http.ResponseWriter, r *http.Request) (models.Voter, bool) {
	token := r.Header.Get("X-Voter-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return models.Voter{}, false
	}

	voter, err := h.engine.VoterByToken(token)
	if errors.Is(err, election.ErrNotRegistered) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return models.Voter{}, false
	}
	if err != nil {
		writeElectionError(w, err)
		return models.Voter{}, false
	}

	return voter, true
}

// RegisterProposal handles POST /election/proposals
func (h *VotingHandler) RegisterProposal(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req models.RegisterProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Description == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "description is required")
		return
	}

	proposal, err := h.engine.RegisterProposal(voter.Identity, req.Description)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterProposalResponse{
		ProposalID: proposal.ID,
	})
}

// CastVote handles POST /election/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ProposalID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	// Salted hash only; the raw client address is never stored
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt)

	if err := h.engine.CastVote(voter.Identity, req.ProposalID, ipHash); err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		ProposalID: req.ProposalID,
		Message:    "Vote recorded",
	})
}

// GetMe handles GET /election/voters/me
// Returns the authenticated voter's own registration and ballot state
func (h *VotingHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	voter, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}
