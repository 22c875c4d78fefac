package appointments

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
)

type Repository struct {
	repo.Scoped[models.Appointment]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.Appointment](db)}
}

func tokenColumn(party enums.SigningParty) string {
	if party == enums.SigningPartyAppointer {
		return "appointer_token"
	}
	return "appointee_token"
}

// FindByToken resolves a signing token to its appointment and party.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.Appointment, enums.SigningParty, error) {
	var row models.Appointment
	err := r.DB(ctx).
		Where("appointer_token = ? OR appointee_token = ?", token, token).
		First(&row).Error
	if err != nil {
		return nil, "", err
	}
	if row.AppointerToken != nil && *row.AppointerToken == token {
		return &row, enums.SigningPartyAppointer, nil
	}
	return &row, enums.SigningPartyAppointee, nil
}

func (r *Repository) FindByIDTx(tx *gorm.DB, id uint) (*models.Appointment, error) {
	var row models.Appointment
	if err := tx.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ConsumeTokenTx stores the party's signature only while the token is still
// unused, returning false when another request got there first.
func (r *Repository) ConsumeTokenTx(tx *gorm.DB, id uint, party enums.SigningParty, token, signature string, at time.Time) (bool, error) {
	updates := map[string]any{tokenColumn(party): nil}
	if party == enums.SigningPartyAppointer {
		updates["appointer_signature"] = signature
		updates["appointer_signed_at"] = at
	} else {
		updates["appointee_signature"] = signature
		updates["appointee_signed_at"] = at
	}
	res := tx.Model(&models.Appointment{}).
		Where("id = ? AND "+tokenColumn(party)+" = ?", id, token).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) SetStatusTx(tx *gorm.DB, id uint, status enums.AppointmentStatus) error {
	return tx.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status).Error
}
