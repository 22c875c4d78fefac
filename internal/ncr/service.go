package ncr

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

// Service manages non-conformance reports.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.NCRReport, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.NCRReport, error)
	Create(ctx context.Context, actor auth.Actor, input CreateReportInput) (*models.NCRReport, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateReportInput) (*models.NCRReport, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error

	AddItem(ctx context.Context, actor auth.Actor, reportID uint, input ItemInput) (*models.NCRItem, error)
	UpdateItem(ctx context.Context, actor auth.Actor, itemID uint, input UpdateItemInput) (*models.NCRItem, error)
	DeleteItem(ctx context.Context, actor auth.Actor, itemID uint) error
	AddImages(ctx context.Context, actor auth.Actor, itemID uint, files []media.File) ([]models.NCRImage, error)
	DeleteImage(ctx context.Context, actor auth.Actor, imageID uint) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	uploads media.Service
}

func NewService(r *Repository, tx txRunner, uploads media.Service) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("ncr repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{repo: r, tx: tx, uploads: uploads}, nil
}

func invalidStatus() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
		WithDetails(map[string]any{"allowed": enums.Strings(enums.ValidNCRStatuses)})
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.NCRReport, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "ncr report", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.NCRReport, error) {
	row, err := s.repo.FindWithItems(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "ncr report", "load")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateReportInput) (*models.NCRReport, error) {
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
	if !row.Status.IsValid() {
		return nil, invalidStatus()
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "ncr report", "create")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateReportInput) (*models.NCRReport, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "ncr report", "load")
	}
	input.apply(row)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if !row.Status.IsValid() {
		return nil, invalidStatus()
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "ncr report", "update")
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
		return repo.MapError(err, "ncr report", "delete")
	}
	_ = s.uploads.Remove(ctx, urls...)
	return nil
}

func (s *service) AddItem(ctx context.Context, actor auth.Actor, reportID uint, input ItemInput) (*models.NCRItem, error) {
	if _, err := s.repo.Get(ctx, actor, reportID); err != nil {
		return nil, repo.MapError(err, "ncr report", "load")
	}
	status := input.Status
	if status == "" {
		status = enums.NCRStatusOpen
	}
	if !status.IsValid() {
		return nil, invalidStatus()
	}
	item := &models.NCRItem{
		ReportID:          reportID,
		Description:       strings.TrimSpace(input.Description),
		CorrectiveAction:  input.CorrectiveAction,
		ResponsiblePerson: strings.TrimSpace(input.ResponsiblePerson),
		DueDate:           input.DueDate,
		Status:            status,
	}
	if item.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, repo.MapError(err, "ncr item", "create")
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, actor auth.Actor, itemID uint, input UpdateItemInput) (*models.NCRItem, error) {
	item, _, err := s.repo.FindItem(ctx, actor, itemID)
	if err != nil {
		return nil, repo.MapError(err, "ncr item", "load")
	}
	input.apply(item)
	if item.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description cannot be empty")
	}
	if !item.Status.IsValid() {
		return nil, invalidStatus()
	}
	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, repo.MapError(err, "ncr item", "update")
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, actor auth.Actor, itemID uint) error {
	item, _, err := s.repo.FindItem(ctx, actor, itemID)
	if err != nil {
		return repo.MapError(err, "ncr item", "load")
	}
	var urls []string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		urls, err = s.repo.DeleteItemTx(tx, item.ID)
		return err
	})
	if err != nil {
		return repo.MapError(err, "ncr item", "delete")
	}
	_ = s.uploads.Remove(ctx, urls...)
	return nil
}

func (s *service) AddImages(ctx context.Context, actor auth.Actor, itemID uint, files []media.File) ([]models.NCRImage, error) {
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}
	item, report, err := s.repo.FindItem(ctx, actor, itemID)
	if err != nil {
		return nil, repo.MapError(err, "ncr item", "load")
	}

	images := make([]models.NCRImage, 0, len(files))
	stored := make([]string, 0, len(files))
	for _, f := range files {
		out, err := s.uploads.Store(ctx, report.CompanyID, enums.UploadFolderNCR, f, media.Images())
		if err != nil {
			_ = s.uploads.Remove(ctx, stored...)
			return nil, err
		}
		stored = append(stored, out.URL)
		images = append(images, models.NCRImage{ItemID: item.ID, URL: out.URL, FileName: out.FileName})
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.AddImagesTx(tx, images)
	})
	if err != nil {
		_ = s.uploads.Remove(ctx, stored...)
		return nil, repo.MapError(err, "ncr image", "create")
	}
	return images, nil
}

func (s *service) DeleteImage(ctx context.Context, actor auth.Actor, imageID uint) error {
	img, err := s.repo.FindImage(ctx, actor, imageID)
	if err != nil {
		return repo.MapError(err, "ncr image", "load")
	}
	if err := s.repo.DeleteImage(ctx, img.ID); err != nil {
		return repo.MapError(err, "ncr image", "delete")
	}
	_ = s.uploads.Remove(ctx, img.URL)
	return nil
}
