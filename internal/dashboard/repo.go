package dashboard

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

// Repository runs the read-only aggregates behind the dashboard.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) count(ctx context.Context, actor auth.Actor, model any, filters ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var n int64
	err := r.DB(ctx).Model(model).Scopes(repo.Scope(actor)).Scopes(filters...).Count(&n).Error
	return n, err
}

func (r *Repository) OpenIncidents(ctx context.Context, actor auth.Actor) (int64, error) {
	return r.count(ctx, actor, &models.Incident{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("status <> ?", enums.IncidentStatusClosed)
	})
}

func (r *Repository) PendingAppointments(ctx context.Context, actor auth.Actor) (int64, error) {
	return r.count(ctx, actor, &models.Appointment{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("status IN ?", enums.AwaitingSignatureStatuses)
	})
}

func (r *Repository) ExpiringCertificates(ctx context.Context, actor auth.Actor, today types.Date) (int64, error) {
	return r.count(ctx, actor, &models.Certificate{}, repo.ExpiryFilter(enums.ExpiryStatusExpiring, today))
}

func (r *Repository) ExpiringMedicals(ctx context.Context, actor auth.Actor, today types.Date) (int64, error) {
	return r.count(ctx, actor, &models.Medical{}, repo.ExpiryFilter(enums.ExpiryStatusExpiring, today))
}

func (r *Repository) PendingPPESignatures(ctx context.Context, actor auth.Actor) (int64, error) {
	return r.count(ctx, actor, &models.PPEIssue{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", enums.PPEIssueStatusPendingSignature)
	})
}

func (r *Repository) LowStockItems(ctx context.Context, actor auth.Actor) (int64, error) {
	return r.count(ctx, actor, &models.PPEStock{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("quantity <= reorder_level")
	})
}

// IncidentDatesSince returns the occurrence date of every incident on or after from.
func (r *Repository) IncidentDatesSince(ctx context.Context, actor auth.Actor, from types.Date) ([]types.Date, error) {
	var dates []types.Date
	err := r.DB(ctx).Model(&models.Incident{}).
		Scopes(repo.Scope(actor)).
		Where("occurred_at >= ?", from).
		Pluck("occurred_at", &dates).Error
	return dates, err
}

// TopIncidentValues groups incidents by column and returns the largest groups.
// Blank values are skipped. column is always a constant from this package.
func (r *Repository) TopIncidentValues(ctx context.Context, actor auth.Actor, column string, limit int) ([]LabelValue, error) {
	rows := []LabelValue{}
	err := r.DB(ctx).Model(&models.Incident{}).
		Scopes(repo.Scope(actor)).
		Select(column + " AS label, COUNT(*) AS value").
		Where(column + " <> ''").
		Group(column).
		Order("value DESC, label").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
