package models

import (
	"encoding/json"
	"time"
)

// Workflow phase constants, in lifecycle order
const (
	PhaseRegisteringVoters            = "RegisteringVoters"
	PhaseProposalsRegistrationStarted = "ProposalsRegistrationStarted"
	PhaseProposalsRegistrationEnded   = "ProposalsRegistrationEnded"
	PhaseVotingSessionStarted         = "VotingSessionStarted"
	PhaseVotingSessionEnded           = "VotingSessionEnded"
	PhaseVotesTallied                 = "VotesTallied"
)

// Event kind constants
const (
	EventVoterRegistered      = "VoterRegistered"
	EventWorkflowStatusChange = "WorkflowStatusChange"
	EventProposalRegistered   = "ProposalRegistered"
	EventVoted                = "Voted"
	EventVotesCounted         = "VotesCounted"
	EventBallotsCleared       = "BallotsCleared"
	EventElectionReset        = "ElectionReset"
)

// NoProposal is the sentinel proposal id meaning "none": no winner recorded,
// or voter has not voted yet. Real proposal ids start at 1.
const NoProposal int64 = 0

// Request types

type RegisterVoterRequest struct {
	Identity string `json:"identity"`
}

type RegisterProposalRequest struct {
	Description string `json:"description"`
}

type CastVoteRequest struct {
	ProposalID int64 `json:"proposal_id"`
}

// Response types

type RegisterVoterResponse struct {
	Identity   string `json:"identity"`
	VoterToken string `json:"voter_token"`
}

type PhaseChangeResponse struct {
	PreviousPhase string `json:"previous_phase"`
	CurrentPhase  string `json:"current_phase"`
}

type RegisterProposalResponse struct {
	ProposalID int64 `json:"proposal_id"`
}

type CastVoteResponse struct {
	ProposalID int64  `json:"proposal_id"`
	Message    string `json:"message"`
}

type TallyResponse struct {
	WinningProposalID int64     `json:"winning_proposal_id"`
	Winner            *Proposal `json:"winner,omitempty"`
}

type StatusResponse struct {
	Phase string `json:"phase"`
}

type SummaryResponse struct {
	ElectionID        string    `json:"election_id"`
	Phase             string    `json:"phase"`
	RegisteredVoters  int64     `json:"registered_voters"`
	ProposalCount     int64     `json:"proposal_count"`
	VotesCast         int64     `json:"votes_cast"`
	WinningProposalID int64     `json:"winning_proposal_id"`
	CreatedAt         time.Time `json:"created_at"`
	Age               string    `json:"age"`
}

type ResetResponse struct {
	Message string `json:"message"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type ProposalListResponse struct {
	Proposals []Proposal `json:"proposals"`
}

// Domain types

type Voter struct {
	Identity        string    `json:"identity"`
	VoterToken      string    `json:"-"` // Never expose in JSON
	HasVoted        bool      `json:"has_voted"`
	VotedProposalID int64     `json:"voted_proposal_id"`
	Position        int64     `json:"position"`
	RegisteredAt    time.Time `json:"registered_at"`
	VoteIPHash      *string   `json:"-"` // Never expose in JSON
}

type Proposal struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	ProposedBy  string    `json:"proposed_by"`
	VoteCount   int64     `json:"vote_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type Event struct {
	Seq       int64           `json:"seq"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	EmittedAt time.Time       `json:"emitted_at"`
}

// Event payloads

type VoterRegisteredPayload struct {
	Identity string `json:"identity"`
}

type WorkflowStatusChangePayload struct {
	PreviousPhase string `json:"previous_phase"`
	CurrentPhase  string `json:"current_phase"`
}

type ProposalRegisteredPayload struct {
	ProposalID int64 `json:"proposal_id"`
}

type VotedPayload struct {
	Identity   string `json:"identity"`
	ProposalID int64  `json:"proposal_id"`
}

type VotesCountedPayload struct {
	WinningProposalID int64 `json:"winning_proposal_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
