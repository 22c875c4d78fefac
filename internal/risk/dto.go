package risk

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateAssessmentInput struct {
	Title      string      `json:"title" validate:"required,max=300"`
	Activity   string      `json:"activity"`
	Department string      `json:"department" validate:"max=200"`
	Hazards    string      `json:"hazards"`
	RiskLevel  string      `json:"riskLevel" validate:"omitempty,oneof=low medium high extreme"`
	Controls   string      `json:"controls"`
	Assessor   string      `json:"assessor" validate:"max=200"`
	Date       *types.Date `json:"date" validate:"required"`
	ReviewDate *types.Date `json:"reviewDate"`
	CompanyID  *uint       `json:"companyId"`
}

type UpdateAssessmentInput struct {
	Title      *string     `json:"title" validate:"omitempty,min=1,max=300"`
	Activity   *string     `json:"activity"`
	Department *string     `json:"department" validate:"omitempty,max=200"`
	Hazards    *string     `json:"hazards"`
	RiskLevel  *string     `json:"riskLevel" validate:"omitempty,oneof=low medium high extreme"`
	Controls   *string     `json:"controls"`
	Assessor   *string     `json:"assessor" validate:"omitempty,max=200"`
	Date       *types.Date `json:"date"`
	ReviewDate *types.Date `json:"reviewDate"`
	// Status may only move a signed assessment back to draft.
	Status *string `json:"status" validate:"omitempty,oneof=draft signed"`
}

type GenerateInput struct {
	Activity   string `json:"activity" validate:"required"`
	Hazards    string `json:"hazards"`
	Department string `json:"department"`
}

type SignInput struct {
	Signature string `json:"signature" validate:"required"`
	SignedBy  string `json:"signedBy" validate:"required,max=200"`
}

func (in CreateAssessmentInput) toModel(companyID *uint) *models.RiskAssessment {
	m := &models.RiskAssessment{
		CompanyID:  companyID,
		Title:      strings.TrimSpace(in.Title),
		Activity:   in.Activity,
		Department: strings.TrimSpace(in.Department),
		Hazards:    in.Hazards,
		RiskLevel:  enums.RiskLevelMedium,
		Controls:   in.Controls,
		Assessor:   strings.TrimSpace(in.Assessor),
		Date:       *in.Date,
		ReviewDate: in.ReviewDate,
		Status:     enums.RiskAssessmentStatusDraft,
	}
	if in.RiskLevel != "" {
		m.RiskLevel = enums.RiskLevel(in.RiskLevel)
	}
	return m
}

func (in UpdateAssessmentInput) apply(m *models.RiskAssessment) {
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Activity != nil {
		m.Activity = *in.Activity
	}
	if in.Department != nil {
		m.Department = strings.TrimSpace(*in.Department)
	}
	if in.Hazards != nil {
		m.Hazards = *in.Hazards
	}
	if in.RiskLevel != nil {
		m.RiskLevel = enums.RiskLevel(*in.RiskLevel)
	}
	if in.Controls != nil {
		m.Controls = *in.Controls
	}
	if in.Assessor != nil {
		m.Assessor = strings.TrimSpace(*in.Assessor)
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.ReviewDate != nil {
		m.ReviewDate = in.ReviewDate
	}
}
