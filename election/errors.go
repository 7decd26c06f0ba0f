// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "errors"

// Precondition errors. Every operation either fully applies or fails with
// one of these (wrapped with context) and no partial mutation. Caller
// authorization itself lives in package auth; by the time an engine method
// runs, the caller's role is already established.
var (
	ErrAlreadyRegistered = errors.New("voter already registered")
	ErrNotRegistered     = errors.New("voter not registered")
	ErrPhaseNotOpen      = errors.New("operation not open in current phase")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrInvalidProposal   = errors.New("invalid proposal id")
	ErrInvalidTransition = errors.New("invalid phase transition")
)
