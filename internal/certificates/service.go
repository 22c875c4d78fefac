package certificates

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

// Service manages training certificates with a read-time expiry status.
type Service interface {
	List(ctx context.Context, actor auth.Actor, status enums.ExpiryStatus) ([]models.Certificate, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Certificate, error)
	Create(ctx context.Context, actor auth.Actor, input CreateCertificateInput, file *media.File) (*models.Certificate, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateCertificateInput, file *media.File) (*models.Certificate, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type Repository struct {
	repo.Scoped[models.Certificate]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.Certificate](db)}
}

type service struct {
	repo    *Repository
	uploads media.Service
	now     func() time.Time
}

func NewService(r *Repository, uploads media.Service, now func() time.Time) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("certificate repository required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: r, uploads: uploads, now: now}, nil
}

func (s *service) today() types.Date { return types.NewDate(s.now().UTC()) }

func (s *service) List(ctx context.Context, actor auth.Actor, status enums.ExpiryStatus) ([]models.Certificate, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	today := s.today()
	rows, err := s.repo.List(ctx, actor, repo.ExpiryFilter(status, today))
	if err != nil {
		return nil, repo.MapError(err, "certificate", "list")
	}
	for i := range rows {
		rows[i].Status = enums.ExpiryStatusOn(rows[i].ExpiryDate, today)
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Certificate, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "certificate", "load")
	}
	row.Status = enums.ExpiryStatusOn(row.ExpiryDate, s.today())
	return row, nil
}

func validate(m *models.Certificate) error {
	if m.EmployeeName == "" || m.Type == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "employeeName and type are required")
	}
	if m.IssueDate.IsZero() || m.ExpiryDate.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "issueDate and expiryDate are required")
	}
	if m.ExpiryDate.Before(m.IssueDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiryDate cannot be before issueDate")
	}
	return nil
}

func (s *service) attach(ctx context.Context, m *models.Certificate, file *media.File) (string, error) {
	if file == nil {
		return "", nil
	}
	stored, err := s.uploads.Store(ctx, m.CompanyID, enums.UploadFolderCertificates, *file, media.AnyFile())
	if err != nil {
		return "", err
	}
	previous := ""
	if m.FileURL != nil {
		previous = *m.FileURL
	}
	m.FileURL = &stored.URL
	m.FileName = &stored.FileName
	return previous, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateCertificateInput, file *media.File) (*models.Certificate, error) {
	if input.IssueDate == nil || input.ExpiryDate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "issueDate and expiryDate are required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := input.toModel(companyID)
	if err := validate(row); err != nil {
		return nil, err
	}
	if _, err := s.attach(ctx, row, file); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if row.FileURL != nil {
			_ = s.uploads.Remove(ctx, *row.FileURL)
		}
		return nil, repo.MapError(err, "certificate", "create")
	}
	row.Status = enums.ExpiryStatusOn(row.ExpiryDate, s.today())
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateCertificateInput, file *media.File) (*models.Certificate, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "certificate", "load")
	}
	input.apply(row)
	if err := validate(row); err != nil {
		return nil, err
	}
	previous, err := s.attach(ctx, row, file)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "certificate", "update")
	}
	if previous != "" {
		_ = s.uploads.Remove(ctx, previous)
	}
	row.Status = enums.ExpiryStatusOn(row.ExpiryDate, s.today())
	return row, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return repo.MapError(err, "certificate", "load")
	}
	if err := s.repo.Delete(ctx, actor, id); err != nil {
		return repo.MapError(err, "certificate", "delete")
	}
	if row.FileURL != nil {
		_ = s.uploads.Remove(ctx, *row.FileURL)
	}
	return nil
}
