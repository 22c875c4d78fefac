package ppe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/email"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/links"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
)

// Service manages the PPE register: item types, stock, people and issues.
type Service interface {
	ListTypes(ctx context.Context, actor auth.Actor) ([]models.PPEItemType, error)
	CreateType(ctx context.Context, actor auth.Actor, input ItemTypeInput) (*models.PPEItemType, error)
	UpdateType(ctx context.Context, actor auth.Actor, id uint, input UpdateItemTypeInput) (*models.PPEItemType, error)
	DeleteType(ctx context.Context, actor auth.Actor, id uint) error

	ListStock(ctx context.Context, actor auth.Actor) ([]models.PPEStock, error)
	AddStock(ctx context.Context, actor auth.Actor, input AddStockInput) (*models.PPEStock, error)
	UpdateStock(ctx context.Context, actor auth.Actor, id uint, input UpdateStockInput) (*models.PPEStock, error)
	DeleteStock(ctx context.Context, actor auth.Actor, id uint) error

	ListPersons(ctx context.Context, actor auth.Actor) ([]models.PPEPerson, error)
	GetPerson(ctx context.Context, actor auth.Actor, id uint) (*models.PPEPerson, error)
	CreatePerson(ctx context.Context, actor auth.Actor, input PersonInput) (*models.PPEPerson, error)
	UpdatePerson(ctx context.Context, actor auth.Actor, id uint, input UpdatePersonInput) (*models.PPEPerson, error)
	DeletePerson(ctx context.Context, actor auth.Actor, id uint) error

	ListIssues(ctx context.Context, actor auth.Actor) ([]models.PPEIssue, error)
	GetIssue(ctx context.Context, actor auth.Actor, id uint) (*models.PPEIssue, error)
	CreateIssue(ctx context.Context, actor auth.Actor, input CreateIssueInput) (*IssueResult, error)
	DeleteIssue(ctx context.Context, actor auth.Actor, id uint) error
	SignIssue(ctx context.Context, actor auth.Actor, id uint, input SignInput) (*models.PPEIssue, error)
	PublicIssue(ctx context.Context, token string) (*PublicIssueView, error)
	PublicSign(ctx context.Context, input SignInput) (*PublicIssueView, error)
	ExportIssues(ctx context.Context, actor auth.Actor) ([]byte, error)
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
		return nil, fmt.Errorf("ppe repository required")
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

// Item types.

func (s *service) ListTypes(ctx context.Context, actor auth.Actor) ([]models.PPEItemType, error) {
	rows, err := s.repo.Types.List(ctx, actor)
	return rows, repo.MapError(err, "item type", "list")
}

func (s *service) CreateType(ctx context.Context, actor auth.Actor, input ItemTypeInput) (*models.PPEItemType, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := &models.PPEItemType{CompanyID: companyID, Name: name, Category: strings.TrimSpace(input.Category)}
	if err := s.repo.Types.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "item type", "create")
	}
	return row, nil
}

func (s *service) UpdateType(ctx context.Context, actor auth.Actor, id uint, input UpdateItemTypeInput) (*models.PPEItemType, error) {
	row, err := s.repo.Types.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "item type", "load")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		row.Category = strings.TrimSpace(*input.Category)
	}
	if row.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if err := s.repo.Types.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "item type", "update")
	}
	return row, nil
}

func (s *service) DeleteType(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Types.Delete(ctx, actor, id), "item type", "delete")
}

// Stock.

func (s *service) ListStock(ctx context.Context, actor auth.Actor) ([]models.PPEStock, error) {
	rows, err := s.repo.ListStock(ctx, actor)
	return rows, repo.MapError(err, "stock", "list")
}

func (s *service) AddStock(ctx context.Context, actor auth.Actor, input AddStockInput) (*models.PPEStock, error) {
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if input.ReorderLevel != nil && *input.ReorderLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorderLevel cannot be negative")
	}
	itemType, err := s.repo.Types.Get(ctx, actor, input.ItemTypeID)
	if err != nil {
		return nil, repo.MapError(err, "item type", "load")
	}
	size := strings.TrimSpace(input.Size)

	var out *models.PPEStock
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		row := &models.PPEStock{
			CompanyID:  itemType.CompanyID,
			ItemTypeID: itemType.ID,
			Size:       size,
			Quantity:   input.Quantity,
		}
		if input.ReorderLevel != nil {
			row.ReorderLevel = *input.ReorderLevel
		}
		if err := s.repo.UpsertStockTx(tx, row, input.ReorderLevel != nil); err != nil {
			return err
		}
		out, err = s.repo.FindStockTx(tx, itemType.CompanyID, itemType.ID, size)
		return err
	})
	if err != nil {
		return nil, repo.MapError(err, "stock", "update")
	}
	out.ItemType = itemType
	return out, nil
}

func (s *service) UpdateStock(ctx context.Context, actor auth.Actor, id uint, input UpdateStockInput) (*models.PPEStock, error) {
	row, err := s.repo.Stock.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "stock", "load")
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
		}
		row.Quantity = *input.Quantity
	}
	if input.ReorderLevel != nil {
		if *input.ReorderLevel < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorderLevel cannot be negative")
		}
		row.ReorderLevel = *input.ReorderLevel
	}
	if err := s.repo.Stock.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "stock", "update")
	}
	return row, nil
}

func (s *service) DeleteStock(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Stock.Delete(ctx, actor, id), "stock", "delete")
}

// Persons.

func (s *service) ListPersons(ctx context.Context, actor auth.Actor) ([]models.PPEPerson, error) {
	rows, err := s.repo.Persons.List(ctx, actor)
	return rows, repo.MapError(err, "person", "list")
}

func (s *service) GetPerson(ctx context.Context, actor auth.Actor, id uint) (*models.PPEPerson, error) {
	row, err := s.repo.Persons.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "person", "load")
	}
	return row, nil
}

func (s *service) CreatePerson(ctx context.Context, actor auth.Actor, input PersonInput) (*models.PPEPerson, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := &models.PPEPerson{
		CompanyID:      companyID,
		Name:           name,
		EmployeeNumber: strings.TrimSpace(input.EmployeeNumber),
		Department:     strings.TrimSpace(input.Department),
	}
	if err := s.repo.Persons.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "person", "create")
	}
	return row, nil
}

func (s *service) UpdatePerson(ctx context.Context, actor auth.Actor, id uint, input UpdatePersonInput) (*models.PPEPerson, error) {
	row, err := s.repo.Persons.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "person", "load")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.EmployeeNumber != nil {
		row.EmployeeNumber = strings.TrimSpace(*input.EmployeeNumber)
	}
	if input.Department != nil {
		row.Department = strings.TrimSpace(*input.Department)
	}
	if row.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
	}
	if err := s.repo.Persons.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "person", "update")
	}
	return row, nil
}

func (s *service) DeletePerson(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Persons.Delete(ctx, actor, id), "person", "delete")
}
