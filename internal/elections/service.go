package elections

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/email"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/links"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
	"github.com/delanoso/safetyhub/pkg/security"
)

// Service runs SHE committee elections and the token ballots behind them.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.SHEElection, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.SHEElection, error)
	Create(ctx context.Context, actor auth.Actor, input ElectionInput) (*models.SHEElection, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateElectionInput) (*models.SHEElection, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	SetStatus(ctx context.Context, actor auth.Actor, id uint, input StatusInput) (*models.SHEElection, error)

	AddCandidate(ctx context.Context, actor auth.Actor, id uint, input CandidateInput) (*models.SHECandidate, error)
	DeleteCandidate(ctx context.Context, actor auth.Actor, id, candidateID uint) error
	AddVoter(ctx context.Context, actor auth.Actor, id uint, input VoterInput) (*VoterResult, error)
	DeleteVoter(ctx context.Context, actor auth.Actor, id, voterID uint) error
	Results(ctx context.Context, actor auth.Actor, id uint) (*Results, error)

	Ballot(ctx context.Context, token string) (*Ballot, error)
	Vote(ctx context.Context, input VoteInput) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo    *Repository
	Tx      txRunner
	Mailer  email.Sender
	Links   links.Builder
	Metrics *metrics.Business
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	repo    *Repository
	tx      txRunner
	mailer  email.Sender
	links   links.Builder
	metrics *metrics.Business
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("election repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		mailer:  params.Mailer,
		links:   params.Links,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.SHEElection, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "election", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.SHEElection, error) {
	row, err := s.repo.Get(ctx, actor, id, "Candidates", "Voters")
	if err != nil {
		return nil, repo.MapError(err, "election", "load")
	}
	return row, nil
}

func (s *service) load(ctx context.Context, actor auth.Actor, id uint) (*models.SHEElection, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "election", "load")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input ElectionInput) (*models.SHEElection, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := &models.SHEElection{
		CompanyID:   companyID,
		Title:       title,
		Description: input.Description,
		Status:      enums.ElectionStatusDraft,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "election", "create")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateElectionInput) (*models.SHEElection, error) {
	row, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		row.Title = strings.TrimSpace(*input.Title)
		if row.Title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "election", "update")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteCascadeTx(tx, actor, id)
	})
	return repo.MapError(err, "election", "delete")
}

// SetStatus advances the election by exactly one step.
func (s *service) SetStatus(ctx context.Context, actor auth.Actor, id uint, input StatusInput) (*models.SHEElection, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"allowed": enums.Strings(enums.ValidElectionStatuses)})
	}
	row, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !row.Status.CanMoveTo(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move election from %s to %s", row.Status, input.Status))
	}
	now := s.now().UTC()
	row.Status = input.Status
	switch input.Status {
	case enums.ElectionStatusVotingOpen:
		row.OpenedAt = &now
	case enums.ElectionStatusVotingClosed:
		row.ClosedAt = &now
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "election", "update")
	}
	return row, nil
}

func requireDraft(e *models.SHEElection, what string) error {
	if e.Status != enums.ElectionStatusDraft {
		return pkgerrors.New(pkgerrors.CodeStateConflict, what+" can only change while the election is a draft")
	}
	return nil
}

func (s *service) AddCandidate(ctx context.Context, actor auth.Actor, id uint, input CandidateInput) (*models.SHECandidate, error) {
	election, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := requireDraft(election, "candidates"); err != nil {
		return nil, err
	}
	c := &models.SHECandidate{
		ElectionID: election.ID,
		Name:       strings.TrimSpace(input.Name),
		Department: strings.TrimSpace(input.Department),
		Statement:  input.Statement,
	}
	if c.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.repo.CreateCandidate(ctx, c); err != nil {
		return nil, repo.MapError(err, "candidate", "create")
	}
	return c, nil
}

func (s *service) DeleteCandidate(ctx context.Context, actor auth.Actor, id, candidateID uint) error {
	election, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := requireDraft(election, "candidates"); err != nil {
		return err
	}
	return repo.MapError(s.repo.DeleteCandidate(ctx, id, candidateID), "candidate", "delete")
}

func (s *service) AddVoter(ctx context.Context, actor auth.Actor, id uint, input VoterInput) (*VoterResult, error) {
	election, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := requireDraft(election, "voters"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	token, err := security.NewToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate ballot token")
	}
	var to *string
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		trimmed := strings.ToLower(strings.TrimSpace(*input.Email))
		to = &trimmed
	}
	voter := &models.SHEVoter{ElectionID: election.ID, Name: name, Email: to, Token: token}
	if err := s.repo.CreateVoter(ctx, voter); err != nil {
		return nil, repo.MapError(err, "voter", "create")
	}

	result := &VoterResult{
		Voter:      VoterView{ID: voter.ID, Name: voter.Name, Email: voter.Email},
		BallotLink: s.links.Ballot(token),
	}
	if to != nil && s.mailer != nil && s.mailer.Configured() {
		if err := s.mailer.Send(ctx, email.BallotInvite(*to, name, election.Title, result.BallotLink)); err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithField(ctx, "voter_id", voter.ID), "ballot email failed", err)
			}
		} else {
			result.Emailed = true
		}
	}
	return result, nil
}

func (s *service) DeleteVoter(ctx context.Context, actor auth.Actor, id, voterID uint) error {
	election, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := requireDraft(election, "voters"); err != nil {
		return err
	}
	return repo.MapError(s.repo.DeleteVoter(ctx, id, voterID), "voter", "delete")
}

func (s *service) Results(ctx context.Context, actor auth.Actor, id uint) (*Results, error) {
	election, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	candidates, err := s.repo.ListCandidates(ctx, id)
	if err != nil {
		return nil, repo.MapError(err, "candidate", "list")
	}
	tally, err := s.repo.Tally(ctx, id)
	if err != nil {
		return nil, repo.MapError(err, "vote", "count")
	}
	total, voted, err := s.repo.CountVoters(ctx, id)
	if err != nil {
		return nil, repo.MapError(err, "voter", "count")
	}

	out := &Results{
		ElectionID: election.ID,
		Title:      election.Title,
		Status:     election.Status,
		Candidates: make([]CandidateTally, 0, len(candidates)),
		Voters:     total,
		Voted:      voted,
	}
	for _, c := range candidates {
		out.Candidates = append(out.Candidates, CandidateTally{
			ID: c.ID, Name: c.Name, Department: c.Department, Votes: tally[c.ID],
		})
	}
	if total > 0 {
		out.Turnout = math.Round(float64(voted)/float64(total)*1000) / 10
	}
	return out, nil
}

func (s *service) Ballot(ctx context.Context, token string) (*Ballot, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ballot not found")
	}
	voter, err := s.repo.FindVoterByToken(ctx, token)
	if err != nil {
		return nil, repo.MapError(err, "ballot", "load")
	}
	var election models.SHEElection
	if err := s.repo.DB(ctx).First(&election, voter.ElectionID).Error; err != nil {
		return nil, repo.MapError(err, "election", "load")
	}
	candidates, err := s.repo.ListCandidates(ctx, election.ID)
	if err != nil {
		return nil, repo.MapError(err, "candidate", "list")
	}
	out := &Ballot{
		ElectionTitle: election.Title,
		Description:   election.Description,
		Status:        election.Status,
		VoterName:     voter.Name,
		HasVoted:      voter.HasVoted(),
		Candidates:    make([]BallotCandidate, 0, len(candidates)),
	}
	for _, c := range candidates {
		out.Candidates = append(out.Candidates, BallotCandidate{ID: c.ID, Name: c.Name, Department: c.Department, Statement: c.Statement})
	}
	return out, nil
}

// Vote records a ballot. The first vote for a token wins; the conditional
// update on voted_at makes concurrent submissions race safely.
func (s *service) Vote(ctx context.Context, input VoteInput) error {
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}
	if input.CandidateID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "candidateId is required")
	}
	voter, err := s.repo.FindVoterByToken(ctx, token)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "invalid ballot token")
		}
		return repo.MapError(err, "ballot", "load")
	}
	if voter.HasVoted() {
		return alreadyVoted()
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var election models.SHEElection
		if err := tx.First(&election, voter.ElectionID).Error; err != nil {
			return err
		}
		if election.Status != enums.ElectionStatusVotingOpen {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "voting is not open for this election")
		}
		if _, err := s.repo.FindCandidateTx(tx, election.ID, input.CandidateID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeValidation, "candidate does not belong to this election")
			}
			return err
		}
		ok, err := s.repo.CastVoteTx(tx, voter.ID, input.CandidateID, s.now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return alreadyVoted()
		}
		return nil
	})
	if err != nil {
		return repo.MapError(err, "vote", "record")
	}
	s.metrics.VoteCast()
	return nil
}

func alreadyVoted() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "this ballot has already been used")
}
