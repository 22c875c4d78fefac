package companies

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

// Repository handles company persistence. Companies are not themselves
// company-scoped so it works on raw ids.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context) ([]models.Company, error) {
	rows := []models.Company{}
	err := r.DB(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := r.DB(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *Repository) Create(ctx context.Context, company *models.Company) error {
	return r.DB(ctx).Create(company).Error
}

func (r *Repository) Save(ctx context.Context, company *models.Company) error {
	return r.DB(ctx).Save(company).Error
}

// DeleteIfUnused removes the company unless users still belong to it.
func (r *Repository) DeleteIfUnused(tx *gorm.DB, id uint) (users int64, err error) {
	if err := tx.Model(&models.User{}).Where("company_id = ?", id).Count(&users).Error; err != nil {
		return 0, err
	}
	if users > 0 {
		return users, nil
	}
	res := tx.Delete(&models.Company{}, id)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return 0, nil
}
