package inspections

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateInspectionInput struct {
	Title     string      `json:"title" validate:"required,max=300"`
	Type      string      `json:"type" validate:"max=100"`
	Area      string      `json:"area" validate:"max=200"`
	Inspector string      `json:"inspector" validate:"max=200"`
	Date      *types.Date `json:"date" validate:"required"`
	Status    string      `json:"status" validate:"omitempty,oneof=scheduled completed overdue"`
	Findings  string      `json:"findings"`
	Score     *int        `json:"score" validate:"omitempty,min=0,max=100"`
	CompanyID *uint       `json:"companyId"`
}

type UpdateInspectionInput struct {
	Title     *string     `json:"title" validate:"omitempty,min=1,max=300"`
	Type      *string     `json:"type" validate:"omitempty,max=100"`
	Area      *string     `json:"area" validate:"omitempty,max=200"`
	Inspector *string     `json:"inspector" validate:"omitempty,max=200"`
	Date      *types.Date `json:"date"`
	Status    *string     `json:"status" validate:"omitempty,oneof=scheduled completed overdue"`
	Findings  *string     `json:"findings"`
	Score     *int        `json:"score" validate:"omitempty,min=0,max=100"`
}

func (in CreateInspectionInput) toModel(companyID *uint) *models.Inspection {
	m := &models.Inspection{
		CompanyID: companyID,
		Title:     strings.TrimSpace(in.Title),
		Type:      strings.TrimSpace(in.Type),
		Area:      strings.TrimSpace(in.Area),
		Inspector: strings.TrimSpace(in.Inspector),
		Date:      *in.Date,
		Status:    enums.InspectionStatusScheduled,
		Findings:  in.Findings,
		Score:     in.Score,
	}
	if in.Status != "" {
		m.Status = enums.InspectionStatus(in.Status)
	}
	return m
}

func (in UpdateInspectionInput) apply(m *models.Inspection) {
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Type != nil {
		m.Type = strings.TrimSpace(*in.Type)
	}
	if in.Area != nil {
		m.Area = strings.TrimSpace(*in.Area)
	}
	if in.Inspector != nil {
		m.Inspector = strings.TrimSpace(*in.Inspector)
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.Status != nil {
		m.Status = enums.InspectionStatus(*in.Status)
	}
	if in.Findings != nil {
		m.Findings = *in.Findings
	}
	if in.Score != nil {
		m.Score = in.Score
	}
}
