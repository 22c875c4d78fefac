package ppe

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
)

// Repository groups the four PPE tables.
type Repository struct {
	repo.Base
	Types   repo.Scoped[models.PPEItemType]
	Stock   repo.Scoped[models.PPEStock]
	Persons repo.Scoped[models.PPEPerson]
	Issues  repo.Scoped[models.PPEIssue]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Base:    repo.NewBase(db),
		Types:   repo.NewScoped[models.PPEItemType](db),
		Stock:   repo.NewScoped[models.PPEStock](db),
		Persons: repo.NewScoped[models.PPEPerson](db),
		Issues:  repo.NewScoped[models.PPEIssue](db),
	}
}

func matchCompany(q *gorm.DB, companyID *uint) *gorm.DB {
	if companyID == nil {
		return q.Where("company_id IS NULL")
	}
	return q.Where("company_id = ?", *companyID)
}

func (r *Repository) ListStock(ctx context.Context, actor auth.Actor) ([]models.PPEStock, error) {
	rows := []models.PPEStock{}
	err := r.DB(ctx).Scopes(repo.Scope(actor)).Preload("ItemType").Order("id DESC").Find(&rows).Error
	return rows, err
}

// FindStockTx returns the stock row for (company, itemType, size) or gorm.ErrRecordNotFound.
func (r *Repository) FindStockTx(tx *gorm.DB, companyID *uint, itemTypeID uint, size string) (*models.PPEStock, error) {
	var row models.PPEStock
	err := matchCompany(tx, companyID).
		Where("item_type_id = ? AND size = ?", itemTypeID, size).
		Order("id").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertStockTx inserts row or, when (item type, size) already has stock,
// adds row's quantity to it. The reorder level is replaced only when
// setReorder is true.
func (r *Repository) UpsertStockTx(tx *gorm.DB, row *models.PPEStock, setReorder bool) error {
	set := map[string]any{
		"quantity":   gorm.Expr("ppe_stock.quantity + excluded.quantity"),
		"updated_at": gorm.Expr("excluded.updated_at"),
	}
	if setReorder {
		set["reorder_level"] = gorm.Expr("excluded.reorder_level")
	}
	return tx.Omit("ItemType").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_type_id"}, {Name: "size"}},
		DoUpdates: clause.Assignments(set),
	}).Create(row).Error
}

// DecrementStockTx lowers the matching stock row by quantity without going below zero.
func (r *Repository) DecrementStockTx(tx *gorm.DB, companyID *uint, itemTypeID uint, size string, quantity int) error {
	return matchCompany(tx.Model(&models.PPEStock{}), companyID).
		Where("item_type_id = ? AND size = ?", itemTypeID, size).
		Update("quantity", gorm.Expr("CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END", quantity, quantity)).Error
}

func (r *Repository) CountLowStock(ctx context.Context, actor auth.Actor) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(&models.PPEStock{}).Scopes(repo.Scope(actor)).
		Where("quantity <= reorder_level").Count(&n).Error
	return n, err
}

func (r *Repository) ListIssues(ctx context.Context, actor auth.Actor) ([]models.PPEIssue, error) {
	rows := []models.PPEIssue{}
	err := r.DB(ctx).Scopes(repo.Scope(actor)).
		Preload("Person").Preload("ItemType").
		Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindIssueByToken(ctx context.Context, token string) (*models.PPEIssue, error) {
	var row models.PPEIssue
	err := r.DB(ctx).Preload("Person").Preload("ItemType").Where("sign_token = ?", token).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) FindIssueTx(tx *gorm.DB, id uint) (*models.PPEIssue, error) {
	var row models.PPEIssue
	if err := tx.Preload("Person").Preload("ItemType").First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ConsumeSignTokenTx signs a pending issue only while its token is unused.
func (r *Repository) ConsumeSignTokenTx(tx *gorm.DB, id uint, token, signature string, at time.Time) (bool, error) {
	res := tx.Model(&models.PPEIssue{}).
		Where("id = ? AND sign_token = ? AND status = ?", id, token, enums.PPEIssueStatusPendingSignature).
		Updates(map[string]any{
			"signature":  signature,
			"signed_at":  at,
			"status":     enums.PPEIssueStatusSigned,
			"sign_token": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
