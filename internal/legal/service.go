package legal

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

// Service keeps the register of acts, regulations and standards that apply
// to a company, optionally with a copy of the document.
type Service interface {
	List(ctx context.Context, actor auth.Actor, category string) ([]models.LegalDocument, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.LegalDocument, error)
	Create(ctx context.Context, actor auth.Actor, input CreateDocumentInput, file *media.File) (*models.LegalDocument, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateDocumentInput, file *media.File) (*models.LegalDocument, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type Repository struct {
	repo.Scoped[models.LegalDocument]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.LegalDocument](db)}
}

type service struct {
	repo    *Repository
	uploads media.Service
}

func NewService(r *Repository, uploads media.Service) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("legal document repository required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{repo: r, uploads: uploads}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, category string) ([]models.LegalDocument, error) {
	rows, err := s.repo.List(ctx, actor, func(q *gorm.DB) *gorm.DB {
		if category != "" {
			q = q.Where("category = ?", category)
		}
		return q
	})
	return rows, repo.MapError(err, "legal document", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.LegalDocument, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "legal document", "load")
	}
	return row, nil
}

// attach stores file on the document and returns the URL it replaced.
func (s *service) attach(ctx context.Context, m *models.LegalDocument, file *media.File) (string, error) {
	if file == nil {
		return "", nil
	}
	stored, err := s.uploads.Store(ctx, m.CompanyID, enums.UploadFolderLegal, *file, media.AnyFile())
	if err != nil {
		return "", err
	}
	var previous string
	if m.FileURL != nil {
		previous = *m.FileURL
	}
	m.FileURL = &stored.URL
	m.FileName = &stored.FileName
	return previous, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateDocumentInput, file *media.File) (*models.LegalDocument, error) {
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := input.toModel(companyID)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if _, err := s.attach(ctx, row, file); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if file != nil {
			_ = s.uploads.Remove(ctx, *row.FileURL)
		}
		return nil, repo.MapError(err, "legal document", "create")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateDocumentInput, file *media.File) (*models.LegalDocument, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "legal document", "load")
	}
	input.apply(row)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	previous, err := s.attach(ctx, row, file)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "legal document", "update")
	}
	if previous != "" {
		_ = s.uploads.Remove(ctx, previous)
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return repo.MapError(err, "legal document", "load")
	}
	if err := s.repo.Delete(ctx, actor, id); err != nil {
		return repo.MapError(err, "legal document", "delete")
	}
	if row.FileURL != nil {
		_ = s.uploads.Remove(ctx, *row.FileURL)
	}
	return nil
}
