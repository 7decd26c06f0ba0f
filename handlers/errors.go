// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/election"
	"github.com/danielhkuo/ballotbox/middleware"
)

// writeElectionError maps engine precondition errors onto HTTP statuses.
// The error text carries the violated precondition, so it goes to the
// client verbatim. Anything unrecognized is an internal failure.
func writeElectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, election.ErrAlreadyRegistered),
		errors.Is(err, election.ErrAlreadyVoted),
		errors.Is(err, election.ErrPhaseNotOpen),
		errors.Is(err, election.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, election.ErrNotRegistered):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, election.ErrInvalidProposal):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("election operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
