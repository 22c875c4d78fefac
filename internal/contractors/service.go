package contractors

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/links"
	"github.com/delanoso/safetyhub/pkg/security"
)

// Service manages contractors and their token-gated safety file uploads.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.Contractor, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*Detail, error)
	Create(ctx context.Context, actor auth.Actor, input CreateContractorInput) (*Detail, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateContractorInput) (*Detail, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	RotateToken(ctx context.Context, actor auth.Actor, id uint) (*Detail, error)
	DeleteDocument(ctx context.Context, actor auth.Actor, id, docID uint) error
	PublicView(ctx context.Context, token string) (*PublicView, error)
	PublicUpload(ctx context.Context, token string, section string, file media.File) (*models.ContractorDocument, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo     *Repository
	Tx       txRunner
	Uploads  media.Service
	Links    links.Builder
	MaxBytes int64
}

type service struct {
	repo    *Repository
	tx      txRunner
	uploads media.Service
	links   links.Builder
	policy  media.Policy
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contractor repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		uploads: params.Uploads,
		links:   params.Links,
		policy:  media.ContractorDocuments(params.MaxBytes),
	}, nil
}

func (s *service) detail(c *models.Contractor) *Detail {
	return &Detail{Contractor: *c, UploadLink: s.links.ContractorUpload(c.UploadToken)}
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.Contractor, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "contractor", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*Detail, error) {
	row, err := s.repo.Get(ctx, actor, id, "Documents")
	if err != nil {
		return nil, repo.MapError(err, "contractor", "load")
	}
	return s.detail(row), nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateContractorInput) (*Detail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	token, err := security.NewToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate upload token")
	}
	row := &models.Contractor{
		CompanyID:     companyID,
		Name:          name,
		ContactPerson: strings.TrimSpace(input.ContactPerson),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		Scope:         input.Scope,
		UploadToken:   token,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "contractor", "create")
	}
	return s.detail(row), nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateContractorInput) (*Detail, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "contractor", "load")
	}
	input.apply(row)
	if row.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "contractor", "update")
	}
	return s.Get(ctx, actor, id)
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	var urls []string
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		urls, err = s.repo.DeleteCascadeTx(tx, actor, id)
		return err
	})
	if err != nil {
		return repo.MapError(err, "contractor", "delete")
	}
	_ = s.uploads.Remove(ctx, urls...)
	return nil
}

func (s *service) RotateToken(ctx context.Context, actor auth.Actor, id uint) (*Detail, error) {
	if _, err := s.repo.Get(ctx, actor, id); err != nil {
		return nil, repo.MapError(err, "contractor", "load")
	}
	token, err := security.NewToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate upload token")
	}
	if err := s.repo.SetToken(ctx, id, token); err != nil {
		return nil, repo.MapError(err, "contractor", "update")
	}
	return s.Get(ctx, actor, id)
}

func (s *service) DeleteDocument(ctx context.Context, actor auth.Actor, id, docID uint) error {
	if _, err := s.repo.Get(ctx, actor, id); err != nil {
		return repo.MapError(err, "contractor", "load")
	}
	doc, err := s.repo.FindDocument(ctx, id, docID)
	if err != nil {
		return repo.MapError(err, "document", "load")
	}
	if err := s.repo.DeleteDocument(ctx, doc.ID); err != nil {
		return repo.MapError(err, "document", "delete")
	}
	_ = s.uploads.Remove(ctx, doc.URL)
	return nil
}

func (s *service) byToken(ctx context.Context, token string) (*models.Contractor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid upload link")
	}
	row, err := s.repo.FindByToken(ctx, token)
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "upload link is invalid or has been replaced")
	}
	if err != nil {
		return nil, repo.MapError(err, "contractor", "load")
	}
	return row, nil
}

func (s *service) PublicView(ctx context.Context, token string) (*PublicView, error) {
	row, err := s.byToken(ctx, token)
	if err != nil {
		return nil, err
	}
	bySection := map[enums.ContractorSection][]models.ContractorDocument{}
	for _, d := range row.Documents {
		bySection[d.Section] = append(bySection[d.Section], d)
	}
	view := &PublicView{Name: row.Name, Sections: make([]Section, 0, len(enums.ValidContractorSections))}
	for _, key := range enums.ValidContractorSections {
		docs := bySection[key]
		if docs == nil {
			docs = []models.ContractorDocument{}
		}
		view.Sections = append(view.Sections, Section{Key: key, Label: sectionLabel(key), Documents: docs})
	}
	return view, nil
}

func (s *service) PublicUpload(ctx context.Context, token string, section string, file media.File) (*models.ContractorDocument, error) {
	key := enums.ContractorSection(strings.TrimSpace(section))
	if !key.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown section").
			WithDetails(map[string]any{"allowed": enums.Strings(enums.ValidContractorSections)})
	}
	row, err := s.byToken(ctx, token)
	if err != nil {
		return nil, err
	}
	stored, err := s.uploads.Store(ctx, row.CompanyID, enums.UploadFolderContractors, file, s.policy)
	if err != nil {
		return nil, err
	}
	doc := &models.ContractorDocument{
		ContractorID: row.ID,
		Section:      key,
		FileName:     stored.FileName,
		URL:          stored.URL,
		ContentType:  stored.ContentType,
		SizeBytes:    stored.SizeBytes,
	}
	if err := s.repo.AddDocument(ctx, doc); err != nil {
		_ = s.uploads.Remove(ctx, stored.URL)
		return nil, repo.MapError(err, "document", "create")
	}
	return doc, nil
}
