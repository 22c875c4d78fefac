package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type RiskAssessment struct {
	ID         uint                       `gorm:"primaryKey" json:"id"`
	CompanyID  *uint                      `gorm:"column:company_id;index" json:"companyId"`
	Title      string                     `gorm:"column:title;not null" json:"title"`
	Activity   string                     `gorm:"column:activity;not null;default:''" json:"activity"`
	Department string                     `gorm:"column:department;not null;default:''" json:"department"`
	Hazards    string                     `gorm:"column:hazards;not null;default:''" json:"hazards"`
	RiskLevel  enums.RiskLevel            `gorm:"column:risk_level;not null;default:'medium'" json:"riskLevel"`
	Controls   string                     `gorm:"column:controls;not null;default:''" json:"controls"`
	Assessor   string                     `gorm:"column:assessor;not null;default:''" json:"assessor"`
	Date       types.Date                 `gorm:"column:date;not null" json:"date"`
	ReviewDate *types.Date                `gorm:"column:review_date" json:"reviewDate"`
	Status     enums.RiskAssessmentStatus `gorm:"column:status;not null;default:'draft'" json:"status"`
	Signature  *string                    `gorm:"column:signature" json:"signature"`
	SignedBy   *string                    `gorm:"column:signed_by" json:"signedBy"`
	SignedAt   *time.Time                 `gorm:"column:signed_at" json:"signedAt"`
	CreatedAt  time.Time                  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time                  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
