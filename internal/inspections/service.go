package inspections

import (
	"context"
	"fmt"
	"time"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

// Service manages inspections. Returned records carry the effective status,
// so a scheduled inspection dated in the past reads as overdue.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.Inspection, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Inspection, error)
	Create(ctx context.Context, actor auth.Actor, input CreateInspectionInput) (*models.Inspection, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateInspectionInput) (*models.Inspection, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo *Repository
	now  func() time.Time
}

func NewService(r *Repository, now func() time.Time) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("inspection repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: r, now: now}, nil
}

func (s *service) today() types.Date { return types.NewDate(s.now().UTC()) }

func (s *service) derive(m *models.Inspection, today types.Date) {
	m.Status = m.Status.Effective(m.Date, today)
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.Inspection, error) {
	rows, err := s.repo.List(ctx, actor)
	if err != nil {
		return nil, repo.MapError(err, "inspection", "list")
	}
	today := s.today()
	for i := range rows {
		s.derive(&rows[i], today)
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Inspection, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "inspection", "load")
	}
	s.derive(row, s.today())
	return row, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateInspectionInput) (*models.Inspection, error) {
	if input.Date == nil || input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := input.toModel(companyID)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "inspection", "create")
	}
	s.derive(row, s.today())
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateInspectionInput) (*models.Inspection, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "inspection", "load")
	}
	input.apply(row)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if !row.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "inspection", "update")
	}
	s.derive(row, s.today())
	return row, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Delete(ctx, actor, id), "inspection", "delete")
}
