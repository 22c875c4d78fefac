package users

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

// Repository handles user persistence.
type Repository struct {
	repo.Scoped[models.User]
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.User](db)}
}

// FindByEmail looks a user up case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).
		Where("lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user regardless of company, with the company preloaded.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).Preload("Company").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByCompanyTx counts users attached to a company inside tx.
func (r *Repository) CountByCompanyTx(tx *gorm.DB, companyID uint) (int64, error) {
	var n int64
	err := tx.Model(&models.User{}).Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}

// CreateTx inserts a user inside tx.
func (r *Repository) CreateTx(tx *gorm.DB, user *models.User) error {
	return tx.Omit("Company").Create(user).Error
}

// SaveTx writes every column of the user inside tx.
func (r *Repository) SaveTx(tx *gorm.DB, user *models.User) error {
	return tx.Omit("Company").Save(user).Error
}

// UpdateLastLogin stamps a successful login.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// UpdatePasswordHash replaces the stored hash, used when upgrading legacy hashes.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return r.DB(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}
