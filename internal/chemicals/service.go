package chemicals

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
	"github.com/delanoso/safetyhub/pkg/export"
)

// Service manages the hazardous chemical substances register.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.Chemical, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Chemical, error)
	Create(ctx context.Context, actor auth.Actor, input CreateChemicalInput, sds *media.File) (*models.Chemical, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateChemicalInput, sds *media.File) (*models.Chemical, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	Export(ctx context.Context, actor auth.Actor) ([]byte, error)
}

type Repository struct {
	repo.Scoped[models.Chemical]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.Chemical](db)}
}

type service struct {
	repo    *Repository
	uploads media.Service
}

func NewService(r *Repository, uploads media.Service) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("chemical repository required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{repo: r, uploads: uploads}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.Chemical, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "chemical", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Chemical, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "chemical", "load")
	}
	return row, nil
}

func validate(m *models.Chemical) error {
	if m.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if m.Quantity.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	return nil
}

// attachSDS uploads a safety data sheet and returns the URL it replaced.
func (s *service) attachSDS(ctx context.Context, m *models.Chemical, sds *media.File) (string, error) {
	if sds == nil {
		return "", nil
	}
	stored, err := s.uploads.Store(ctx, m.CompanyID, enums.UploadFolderChemicals, *sds, media.AnyFile())
	if err != nil {
		return "", err
	}
	var previous string
	if m.SDSURL != nil {
		previous = *m.SDSURL
	}
	m.SDSURL = &stored.URL
	m.SDSFileName = &stored.FileName
	return previous, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateChemicalInput, sds *media.File) (*models.Chemical, error) {
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := input.toModel(companyID)
	if err := validate(row); err != nil {
		return nil, err
	}
	if _, err := s.attachSDS(ctx, row, sds); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if sds != nil {
			_ = s.uploads.Remove(ctx, *row.SDSURL)
		}
		return nil, repo.MapError(err, "chemical", "create")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateChemicalInput, sds *media.File) (*models.Chemical, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "chemical", "load")
	}
	input.apply(row)
	if err := validate(row); err != nil {
		return nil, err
	}
	previous, err := s.attachSDS(ctx, row, sds)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "chemical", "update")
	}
	if previous != "" {
		_ = s.uploads.Remove(ctx, previous)
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return repo.MapError(err, "chemical", "load")
	}
	if err := s.repo.Delete(ctx, actor, id); err != nil {
		return repo.MapError(err, "chemical", "delete")
	}
	if row.SDSURL != nil {
		_ = s.uploads.Remove(ctx, *row.SDSURL)
	}
	return nil
}

var registerColumns = []export.Column{
	{Header: "Name", Width: 28},
	{Header: "CAS Number", Width: 14},
	{Header: "Supplier", Width: 22},
	{Header: "Location", Width: 20},
	{Header: "Quantity", Width: 12},
	{Header: "Unit", Width: 8},
	{Header: "Hazard Class", Width: 18},
	{Header: "SDS", Width: 40},
	{Header: "SDS Expiry", Width: 12},
	{Header: "Notes", Width: 40},
}

func (s *service) Export(ctx context.Context, actor auth.Actor) ([]byte, error) {
	chemicals, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(chemicals))
	for _, c := range chemicals {
		var sds, sdsExpiry string
		if c.SDSURL != nil {
			sds = *c.SDSURL
		}
		if c.SDSExpiry != nil {
			sdsExpiry = c.SDSExpiry.String()
		}
		quantity, _ := c.Quantity.Float64()
		rows = append(rows, []any{
			c.Name, c.CASNumber, c.Supplier, c.Location, quantity, c.Unit,
			c.HazardClass, sds, sdsExpiry, c.Notes,
		})
	}
	data, err := export.XLSX(export.Sheet{Name: "Chemicals", Columns: registerColumns, Rows: rows})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build chemical register")
	}
	return data, nil
}
