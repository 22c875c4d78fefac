package legal

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateDocumentInput struct {
	Title         string      `json:"title" validate:"required,max=300"`
	Category      string      `json:"category" validate:"max=100"`
	Reference     string      `json:"reference" validate:"max=200"`
	EffectiveDate *types.Date `json:"effectiveDate"`
	Notes         string      `json:"notes"`
	FileURL       *string     `json:"fileUrl" validate:"omitempty,url"`
	FileName      *string     `json:"fileName"`
	CompanyID     *uint       `json:"companyId"`
}

type UpdateDocumentInput struct {
	Title         *string     `json:"title" validate:"omitempty,min=1,max=300"`
	Category      *string     `json:"category" validate:"omitempty,max=100"`
	Reference     *string     `json:"reference" validate:"omitempty,max=200"`
	EffectiveDate *types.Date `json:"effectiveDate"`
	Notes         *string     `json:"notes"`
	FileURL       *string     `json:"fileUrl" validate:"omitempty,url"`
	FileName      *string     `json:"fileName"`
}

func (in CreateDocumentInput) toModel(companyID *uint) *models.LegalDocument {
	return &models.LegalDocument{
		CompanyID:     companyID,
		Title:         strings.TrimSpace(in.Title),
		Category:      strings.TrimSpace(in.Category),
		Reference:     strings.TrimSpace(in.Reference),
		EffectiveDate: in.EffectiveDate,
		Notes:         in.Notes,
		FileURL:       in.FileURL,
		FileName:      in.FileName,
	}
}

func (in UpdateDocumentInput) apply(m *models.LegalDocument) {
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Category != nil {
		m.Category = strings.TrimSpace(*in.Category)
	}
	if in.Reference != nil {
		m.Reference = strings.TrimSpace(*in.Reference)
	}
	if in.EffectiveDate != nil {
		m.EffectiveDate = in.EffectiveDate
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
	if in.FileURL != nil {
		m.FileURL = in.FileURL
	}
	if in.FileName != nil {
		m.FileName = in.FileName
	}
}
