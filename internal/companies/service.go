package companies

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages tenants. Everything but Current is restricted to super users
// at the router.
type Service interface {
	List(ctx context.Context) ([]models.Company, error)
	Get(ctx context.Context, id uint) (*models.Company, error)
	Current(ctx context.Context, actor auth.Actor) (*models.Company, error)
	Create(ctx context.Context, input CreateCompanyInput) (*models.Company, error)
	Update(ctx context.Context, id uint, input UpdateCompanyInput) (*models.Company, error)
	Delete(ctx context.Context, id uint) error
	SetLogo(ctx context.Context, id uint, file media.File) (*models.Company, error)
}

type service struct {
	repo    *Repository
	tx      txRunner
	uploads media.Service
}

func NewService(r *Repository, tx txRunner, uploads media.Service) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{repo: r, tx: tx, uploads: uploads}, nil
}

func (s *service) List(ctx context.Context) ([]models.Company, error) {
	rows, err := s.repo.List(ctx)
	return rows, repo.MapError(err, "company", "list")
}

func (s *service) Get(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.MapError(err, "company", "load")
	}
	return company, nil
}

func (s *service) Current(ctx context.Context, actor auth.Actor) (*models.Company, error) {
	if actor.CompanyID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no company is assigned to this user")
	}
	return s.Get(ctx, *actor.CompanyID)
}

func (s *service) Create(ctx context.Context, input CreateCompanyInput) (*models.Company, error) {
	company := &models.Company{
		Name:      strings.TrimSpace(input.Name),
		UserLimit: defaultUserLimit,
		LogoURL:   input.LogoURL,
	}
	if input.UserLimit != nil {
		company.UserLimit = *input.UserLimit
	}
	if company.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, repo.MapError(err, "company", "create")
	}
	return company, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateCompanyInput) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.MapError(err, "company", "load")
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		company.Name = name
	}
	if input.UserLimit != nil {
		company.UserLimit = *input.UserLimit
	}
	if input.LogoURL != nil {
		company.LogoURL = input.LogoURL
	}
	if err := s.repo.Save(ctx, company); err != nil {
		return nil, repo.MapError(err, "company", "update")
	}
	return company, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		users, err := s.repo.DeleteIfUnused(tx, id)
		if err != nil {
			return repo.MapError(err, "company", "delete")
		}
		if users > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "company still has users; remove them first").
				WithDetails(map[string]any{"userCount": users})
		}
		return nil
	})
}

func (s *service) SetLogo(ctx context.Context, id uint, file media.File) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repo.MapError(err, "company", "load")
	}
	stored, err := s.uploads.Store(ctx, &company.ID, enums.UploadFolderLogos, file, media.Images())
	if err != nil {
		return nil, err
	}
	previous := company.LogoURL
	company.LogoURL = &stored.URL
	if err := s.repo.Save(ctx, company); err != nil {
		return nil, repo.MapError(err, "company", "update")
	}
	if previous != nil {
		_ = s.uploads.Remove(ctx, *previous)
	}
	return company, nil
}
