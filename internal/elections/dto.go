package elections

import "github.com/delanoso/safetyhub/pkg/enums"

type ElectionInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	CompanyID   *uint  `json:"companyId"`
}

type UpdateElectionInput struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

type StatusInput struct {
	Status enums.ElectionStatus `json:"status" validate:"required"`
}

type CandidateInput struct {
	Name       string `json:"name" validate:"required,max=200"`
	Department string `json:"department" validate:"max=200"`
	Statement  string `json:"statement"`
}

type VoterInput struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// VoteInput is the public ballot submission.
type VoteInput struct {
	Token       string `json:"token" validate:"required"`
	CandidateID uint   `json:"candidateId" validate:"required"`
}

// VoterResult carries the ballot link back to the admin who registered the voter.
type VoterResult struct {
	Voter      VoterView `json:"voter"`
	BallotLink string    `json:"ballotLink"`
	Emailed    bool      `json:"emailed"`
}

// VoterView hides the token and chosen candidate.
type VoterView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	HasVoted bool    `json:"hasVoted"`
}

type CandidateTally struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Votes      int64  `json:"votes"`
}

type Results struct {
	ElectionID uint                 `json:"electionId"`
	Title      string               `json:"title"`
	Status     enums.ElectionStatus `json:"status"`
	Candidates []CandidateTally     `json:"candidates"`
	Voters     int64                `json:"voters"`
	Voted      int64                `json:"voted"`
	// Turnout is the percentage of registered voters who voted.
	Turnout float64 `json:"turnout"`
}

type BallotCandidate struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Statement  string `json:"statement"`
}

// Ballot is what a voter sees behind their token.
type Ballot struct {
	ElectionTitle string               `json:"electionTitle"`
	Description   string               `json:"description"`
	Status        enums.ElectionStatus `json:"status"`
	VoterName     string               `json:"voterName"`
	HasVoted      bool                 `json:"hasVoted"`
	Candidates    []BallotCandidate    `json:"candidates"`
}
