package ncr

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

// Repository handles reports and the items and images hanging off them.
// Items and images carry no company column, so every child lookup joins
// back to the report to stay inside the actor's company.
type Repository struct {
	repo.Scoped[models.NCRReport]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.NCRReport](db)}
}

func (r *Repository) FindWithItems(ctx context.Context, actor auth.Actor, id uint) (*models.NCRReport, error) {
	return r.Get(ctx, actor, id, "Items", "Items.Images")
}

// FindItem loads an item through its report. The report is returned for its company.
func (r *Repository) FindItem(ctx context.Context, actor auth.Actor, itemID uint) (*models.NCRItem, *models.NCRReport, error) {
	var item models.NCRItem
	if err := r.DB(ctx).First(&item, itemID).Error; err != nil {
		return nil, nil, err
	}
	report, err := r.Get(ctx, actor, item.ReportID)
	if err != nil {
		return nil, nil, err
	}
	return &item, report, nil
}

func (r *Repository) FindImage(ctx context.Context, actor auth.Actor, imageID uint) (*models.NCRImage, error) {
	var img models.NCRImage
	err := r.DB(ctx).
		Select("ncr_images.*").
		Joins("JOIN ncr_items ON ncr_items.id = ncr_images.item_id").
		Joins("JOIN ncr_reports ON ncr_reports.id = ncr_items.report_id").
		Scopes(repo.ScopeColumn(actor, "ncr_reports.company_id")).
		First(&img, "ncr_images.id = ?", imageID).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *Repository) CreateItem(ctx context.Context, item *models.NCRItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *Repository) SaveItem(ctx context.Context, item *models.NCRItem) error {
	return r.DB(ctx).Omit("Images").Save(item).Error
}

func (r *Repository) AddImagesTx(tx *gorm.DB, images []models.NCRImage) error {
	if len(images) == 0 {
		return nil
	}
	return tx.Create(&images).Error
}

func (r *Repository) DeleteImage(ctx context.Context, id uint) error {
	return r.DB(ctx).Delete(&models.NCRImage{}, id).Error
}

// DeleteItemTx removes an item and its images, returning the image URLs.
func (r *Repository) DeleteItemTx(tx *gorm.DB, itemID uint) ([]string, error) {
	var urls []string
	if err := tx.Model(&models.NCRImage{}).Where("item_id = ?", itemID).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("item_id = ?", itemID).Delete(&models.NCRImage{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Delete(&models.NCRItem{}, itemID).Error; err != nil {
		return nil, err
	}
	return urls, nil
}

// DeleteCascadeTx removes images, items and then the report.
func (r *Repository) DeleteCascadeTx(tx *gorm.DB, actor auth.Actor, id uint) ([]string, error) {
	if _, err := r.GetTx(tx, actor, id); err != nil {
		return nil, err
	}
	items := func() *gorm.DB {
		return tx.Model(&models.NCRItem{}).Select("id").Where("report_id = ?", id)
	}
	var urls []string
	if err := tx.Model(&models.NCRImage{}).Where("item_id IN (?)", items()).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("item_id IN (?)", items()).Delete(&models.NCRImage{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("report_id = ?", id).Delete(&models.NCRItem{}).Error; err != nil {
		return nil, err
	}
	if err := r.DeleteTx(tx, actor, id); err != nil {
		return nil, err
	}
	return urls, nil
}
