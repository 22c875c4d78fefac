package notifications

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// dueBy matches rows that are expired or fall inside the expiring window.
func dueBy(today types.Date) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("expiry_date <= ?", today.AddDays(enums.ExpiringWindowDays))
	}
}

func (r *Repository) DueCertificates(ctx context.Context, actor auth.Actor, today types.Date) ([]models.Certificate, error) {
	var rows []models.Certificate
	err := r.DB(ctx).Scopes(repo.Scope(actor), dueBy(today)).Order("expiry_date").Find(&rows).Error
	return rows, err
}

func (r *Repository) DueMedicals(ctx context.Context, actor auth.Actor, today types.Date) ([]models.Medical, error) {
	var rows []models.Medical
	err := r.DB(ctx).Scopes(repo.Scope(actor), dueBy(today)).Order("expiry_date").Find(&rows).Error
	return rows, err
}

func (r *Repository) AwaitingAppointments(ctx context.Context, actor auth.Actor) ([]models.Appointment, error) {
	var rows []models.Appointment
	err := r.DB(ctx).Scopes(repo.Scope(actor)).
		Where("status IN ?", enums.AwaitingSignatureStatuses).
		Order("date").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) PendingPPEIssues(ctx context.Context, actor auth.Actor) ([]models.PPEIssue, error) {
	var rows []models.PPEIssue
	err := r.DB(ctx).Scopes(repo.Scope(actor)).
		Preload("Person").
		Preload("ItemType").
		Where("status = ?", enums.PPEIssueStatusPendingSignature).
		Order("issue_date").
		Find(&rows).Error
	return rows, err
}
