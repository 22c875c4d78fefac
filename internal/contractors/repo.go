package contractors

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

type Repository struct {
	repo.Scoped[models.Contractor]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.Contractor](db)}
}

func (r *Repository) FindByToken(ctx context.Context, token string) (*models.Contractor, error) {
	var row models.Contractor
	err := r.DB(ctx).
		Preload("Documents", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Where("upload_token = ?", token).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) SetToken(ctx context.Context, id uint, token string) error {
	return r.DB(ctx).Model(&models.Contractor{}).Where("id = ?", id).Update("upload_token", token).Error
}

func (r *Repository) AddDocument(ctx context.Context, doc *models.ContractorDocument) error {
	return r.DB(ctx).Create(doc).Error
}

func (r *Repository) FindDocument(ctx context.Context, contractorID, docID uint) (*models.ContractorDocument, error) {
	var doc models.ContractorDocument
	if err := r.DB(ctx).Where("contractor_id = ?", contractorID).First(&doc, docID).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *Repository) DeleteDocument(ctx context.Context, docID uint) error {
	return r.DB(ctx).Delete(&models.ContractorDocument{}, docID).Error
}

// DeleteCascadeTx removes the documents then the contractor, returning the
// stored document URLs.
func (r *Repository) DeleteCascadeTx(tx *gorm.DB, actor auth.Actor, id uint) ([]string, error) {
	if _, err := r.GetTx(tx, actor, id); err != nil {
		return nil, err
	}
	var urls []string
	if err := tx.Model(&models.ContractorDocument{}).Where("contractor_id = ?", id).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("contractor_id = ?", id).Delete(&models.ContractorDocument{}).Error; err != nil {
		return nil, err
	}
	return urls, r.DeleteTx(tx, actor, id)
}
