package maintenance

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

// Repository covers schedules and the items and service logs under them.
type Repository struct {
	Schedules repo.Scoped[models.MaintenanceSchedule]
	Items     repo.Scoped[models.MaintenanceItem]
	Services  repo.Scoped[models.MaintenanceService]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Schedules: repo.NewScoped[models.MaintenanceSchedule](db),
		Items:     repo.NewScoped[models.MaintenanceItem](db),
		Services:  repo.NewScoped[models.MaintenanceService](db),
	}
}

func (r *Repository) ListItems(ctx context.Context, actor auth.Actor, scheduleID uint) ([]models.MaintenanceItem, error) {
	return r.Items.List(ctx, actor, func(q *gorm.DB) *gorm.DB {
		return q.Where("schedule_id = ?", scheduleID)
	})
}

func (r *Repository) ListServices(ctx context.Context, actor auth.Actor, itemID uint) ([]models.MaintenanceService, error) {
	rows := []models.MaintenanceService{}
	err := r.Services.DB(ctx).
		Scopes(repo.Scope(actor)).
		Where("item_id = ?", itemID).
		Order("service_date DESC, id DESC").
		Find(&rows).Error
	return rows, err
}

// LatestServiceTx returns the most recent remaining service for an item, or nil.
func (r *Repository) LatestServiceTx(tx *gorm.DB, itemID uint) (*models.MaintenanceService, error) {
	var rows []models.MaintenanceService
	err := tx.Where("item_id = ?", itemID).
		Order("service_date DESC, id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (r *Repository) SetServiceDatesTx(tx *gorm.DB, item *models.MaintenanceItem) error {
	return tx.Model(&models.MaintenanceItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"last_service_date": item.LastServiceDate,
			"next_service_date": item.NextServiceDate,
		}).Error
}

// DeleteItemCascadeTx removes an item's service log and then the item.
func (r *Repository) DeleteItemCascadeTx(tx *gorm.DB, actor auth.Actor, id uint) error {
	if _, err := r.Items.GetTx(tx, actor, id); err != nil {
		return err
	}
	if err := tx.Where("item_id = ?", id).Delete(&models.MaintenanceService{}).Error; err != nil {
		return err
	}
	return r.Items.DeleteTx(tx, actor, id)
}

// DeleteScheduleCascadeTx removes services, then items, then the schedule.
func (r *Repository) DeleteScheduleCascadeTx(tx *gorm.DB, actor auth.Actor, id uint) error {
	if _, err := r.Schedules.GetTx(tx, actor, id); err != nil {
		return err
	}
	items := tx.Model(&models.MaintenanceItem{}).Select("id").Where("schedule_id = ?", id)
	if err := tx.Where("item_id IN (?)", items).Delete(&models.MaintenanceService{}).Error; err != nil {
		return err
	}
	if err := tx.Where("schedule_id = ?", id).Delete(&models.MaintenanceItem{}).Error; err != nil {
		return err
	}
	return r.Schedules.DeleteTx(tx, actor, id)
}
