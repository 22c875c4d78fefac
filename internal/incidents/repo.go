package incidents

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

// Repository handles incident persistence and its child rows.
type Repository struct {
	repo.Scoped[models.Incident]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.Incident](db)}
}

func (r *Repository) ListFiltered(ctx context.Context, actor auth.Actor, f Filter) ([]models.Incident, error) {
	return r.List(ctx, actor, func(q *gorm.DB) *gorm.DB {
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.Severity != "" {
			q = q.Where("severity = ?", f.Severity)
		}
		return q
	})
}

func (r *Repository) FindWithChildren(ctx context.Context, actor auth.Actor, id uint) (*models.Incident, error) {
	return r.Get(ctx, actor, id, "Images", "Team")
}

func (r *Repository) AddImagesTx(tx *gorm.DB, images []models.IncidentImage) error {
	if len(images) == 0 {
		return nil
	}
	return tx.Create(&images).Error
}

func (r *Repository) FindImage(ctx context.Context, incidentID, imageID uint) (*models.IncidentImage, error) {
	var img models.IncidentImage
	if err := r.DB(ctx).Where("incident_id = ?", incidentID).First(&img, imageID).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *Repository) DeleteImage(ctx context.Context, imageID uint) error {
	return r.DB(ctx).Delete(&models.IncidentImage{}, imageID).Error
}

func (r *Repository) AddTeamMember(ctx context.Context, member *models.IncidentTeamMember) error {
	return r.DB(ctx).Create(member).Error
}

func (r *Repository) DeleteTeamMember(ctx context.Context, incidentID, memberID uint) error {
	res := r.DB(ctx).Where("incident_id = ?", incidentID).Delete(&models.IncidentTeamMember{}, memberID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascadeTx removes images and team rows before the incident itself and
// returns the image URLs so the stored objects can be cleaned up.
func (r *Repository) DeleteCascadeTx(tx *gorm.DB, actor auth.Actor, id uint) ([]string, error) {
	if _, err := r.GetTx(tx, actor, id); err != nil {
		return nil, err
	}
	var urls []string
	if err := tx.Model(&models.IncidentImage{}).Where("incident_id = ?", id).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("incident_id = ?", id).Delete(&models.IncidentImage{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("incident_id = ?", id).Delete(&models.IncidentTeamMember{}).Error; err != nil {
		return nil, err
	}
	if err := r.DeleteTx(tx, actor, id); err != nil {
		return nil, err
	}
	return urls, nil
}
