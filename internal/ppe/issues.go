package ppe

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/email"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/security"
	"github.com/delanoso/safetyhub/pkg/types"
)

func (s *service) ListIssues(ctx context.Context, actor auth.Actor) ([]models.PPEIssue, error) {
	rows, err := s.repo.ListIssues(ctx, actor)
	return rows, repo.MapError(err, "issue", "list")
}

func (s *service) GetIssue(ctx context.Context, actor auth.Actor, id uint) (*models.PPEIssue, error) {
	row, err := s.repo.Issues.Get(ctx, actor, id, "Person", "ItemType")
	if err != nil {
		return nil, repo.MapError(err, "issue", "load")
	}
	return row, nil
}

func (s *service) CreateIssue(ctx context.Context, actor auth.Actor, input CreateIssueInput) (*IssueResult, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	person, err := s.repo.Persons.Get(ctx, actor, input.PersonID)
	if err != nil {
		return nil, repo.MapError(err, "person", "load")
	}
	itemType, err := s.repo.Types.Get(ctx, actor, input.ItemTypeID)
	if err != nil {
		return nil, repo.MapError(err, "item type", "load")
	}
	if !sameCompany(person.CompanyID, itemType.CompanyID) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "person and item type belong to different companies")
	}

	token, err := security.NewToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate signing token")
	}
	issueDate := types.NewDate(s.now().UTC())
	if input.IssueDate != nil && !input.IssueDate.IsZero() {
		issueDate = *input.IssueDate
	}
	row := &models.PPEIssue{
		CompanyID:  person.CompanyID,
		PersonID:   person.ID,
		ItemTypeID: itemType.ID,
		Size:       strings.TrimSpace(input.Size),
		Quantity:   input.Quantity,
		IssueDate:  issueDate,
		Status:     enums.PPEIssueStatusPendingSignature,
		SignToken:  &token,
	}
	if err := s.repo.Issues.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "issue", "create")
	}
	row.Person = person
	row.ItemType = itemType

	result := &IssueResult{PPEIssue: *row, SignLink: s.links.PPESign(token)}
	to := strings.TrimSpace(input.Email)
	if to != "" && s.mailer != nil && s.mailer.Configured() {
		msg := email.PPESignatureRequest(to, person.Name, itemType.Name, result.SignLink)
		if err := s.mailer.Send(ctx, msg); err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithField(ctx, "ppe_issue_id", row.ID), "ppe signature email failed", err)
			}
		} else {
			result.Emailed = true
		}
	}
	return result, nil
}

func sameCompany(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *service) DeleteIssue(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Issues.Delete(ctx, actor, id), "issue", "delete")
}

func (s *service) SignIssue(ctx context.Context, actor auth.Actor, id uint, input SignInput) (*models.PPEIssue, error) {
	if _, err := s.repo.Issues.Get(ctx, actor, id); err != nil {
		return nil, repo.MapError(err, "issue", "load")
	}
	return s.sign(ctx, id, input.Token, input.Signature)
}

func (s *service) PublicIssue(ctx context.Context, token string) (*PublicIssueView, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
	}
	row, err := s.repo.FindIssueByToken(ctx, token)
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "signing link is invalid or has already been used")
	}
	if err != nil {
		return nil, repo.MapError(err, "issue", "load")
	}
	return publicIssue(row), nil
}

func (s *service) PublicSign(ctx context.Context, input SignInput) (*PublicIssueView, error) {
	id := uint(0)
	if input.IssueID != nil {
		id = *input.IssueID
	} else {
		row, err := s.repo.FindIssueByToken(ctx, strings.TrimSpace(input.Token))
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
		}
		if err != nil {
			return nil, repo.MapError(err, "issue", "load")
		}
		id = row.ID
	}
	signed, err := s.sign(ctx, id, input.Token, input.Signature)
	if err != nil {
		return nil, err
	}
	return publicIssue(signed), nil
}

// sign consumes the token and decrements the matching stock row in one
// transaction. Stock never drops below zero and a missing stock row is left alone.
func (s *service) sign(ctx context.Context, id uint, token, signature string) (*models.PPEIssue, error) {
	token = strings.TrimSpace(token)
	signature = strings.TrimSpace(signature)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
	}
	if !strings.HasPrefix(signature, "data:") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature must be an image data URL")
	}

	var out *models.PPEIssue
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		issue, err := s.repo.FindIssueTx(tx, id)
		if err != nil {
			return err
		}
		ok, err := s.repo.ConsumeSignTokenTx(tx, id, token, signature, s.now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			if issue.Status == enums.PPEIssueStatusSigned {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "issue has already been signed")
			}
			return pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
		}
		if err := s.repo.DecrementStockTx(tx, issue.CompanyID, issue.ItemTypeID, issue.Size, issue.Quantity); err != nil {
			return err
		}
		out, err = s.repo.FindIssueTx(tx, id)
		return err
	})
	if err != nil {
		return nil, repo.MapError(err, "issue", "sign")
	}
	s.metrics.SignatureCaptured("ppe")
	return out, nil
}

func publicIssue(row *models.PPEIssue) *PublicIssueView {
	view := &PublicIssueView{
		ID:        row.ID,
		Size:      row.Size,
		Quantity:  row.Quantity,
		IssueDate: row.IssueDate,
		Status:    string(row.Status),
		SignedAt:  row.SignedAt,
	}
	if row.Person != nil {
		view.Person = row.Person.Name
	}
	if row.ItemType != nil {
		view.Item = row.ItemType.Name
	}
	return view
}
