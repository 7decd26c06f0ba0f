// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: identity
  - RegisterProposalRequest: description
  - CastVoteRequest: proposal_id

# Response Types

Types for JSON responses:

  - RegisterVoterResponse: identity, voter_token
  - PhaseChangeResponse: previous_phase, current_phase
  - RegisterProposalResponse: proposal_id
  - CastVoteResponse: proposal_id, message
  - TallyResponse: winning_proposal_id, winner
  - StatusResponse: phase
  - SummaryResponse: election headline numbers
  - ResetResponse: message
  - EventsResponse: events
  - ProposalListResponse: proposals
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Voter: whitelist entry with ballot state
  - Proposal: registered proposal with vote count
  - Event: one notification feed entry

Voter.VoterToken and Voter.VoteIPHash are never serialized.

# Constants

Workflow phases, strictly ordered:

	PhaseRegisteringVoters
	PhaseProposalsRegistrationStarted
	PhaseProposalsRegistrationEnded
	PhaseVotingSessionStarted
	PhaseVotingSessionEnded
	PhaseVotesTallied

Event kinds:

	EventVoterRegistered
	EventWorkflowStatusChange
	EventProposalRegistered
	EventVoted
	EventVotesCounted
	EventBallotsCleared
	EventElectionReset

NoProposal (0) is the sentinel for "no proposal": an unset winner or a
voter who has not voted. Real proposal ids start at 1.
*/
package models
