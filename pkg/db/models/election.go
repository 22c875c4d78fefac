package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
)

// SHEElection is a Safety, Health and Environment committee election.
type SHEElection struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	CompanyID   *uint                `gorm:"column:company_id;index" json:"companyId"`
	Title       string               `gorm:"column:title;not null" json:"title"`
	Description string               `gorm:"column:description;not null;default:''" json:"description"`
	Status      enums.ElectionStatus `gorm:"column:status;not null;default:'draft'" json:"status"`
	OpenedAt    *time.Time           `gorm:"column:opened_at" json:"openedAt"`
	ClosedAt    *time.Time           `gorm:"column:closed_at" json:"closedAt"`
	Candidates  []SHECandidate       `gorm:"foreignKey:ElectionID" json:"candidates,omitempty"`
	Voters      []SHEVoter           `gorm:"foreignKey:ElectionID" json:"voters,omitempty"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (SHEElection) TableName() string { return "she_elections" }

type SHECandidate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ElectionID uint      `gorm:"column:election_id;not null;index" json:"electionId"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Department string    `gorm:"column:department;not null;default:''" json:"department"`
	Statement  string    `gorm:"column:statement;not null;default:''" json:"statement"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (SHECandidate) TableName() string { return "she_candidates" }

// SHEVoter holds a single-use ballot token. CandidateID and VotedAt are set once.
type SHEVoter struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ElectionID  uint       `gorm:"column:election_id;not null;index" json:"electionId"`
	Name        string     `gorm:"column:name;not null" json:"name"`
	Email       *string    `gorm:"column:email" json:"email"`
	Token       string     `gorm:"column:token;not null;uniqueIndex" json:"-"`
	CandidateID *uint      `gorm:"column:candidate_id;index" json:"-"`
	VotedAt     *time.Time `gorm:"column:voted_at" json:"votedAt"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (SHEVoter) TableName() string { return "she_voters" }

// HasVoted is exposed instead of the chosen candidate.
func (v SHEVoter) HasVoted() bool {
	return v.VotedAt != nil
}
