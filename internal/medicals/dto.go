package medicals

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateMedicalInput struct {
	EmployeeName string      `json:"employeeName" validate:"required,max=200"`
	Type         string      `json:"type" validate:"required,max=100"`
	IssueDate    *types.Date `json:"issueDate" validate:"required"`
	ExpiryDate   *types.Date `json:"expiryDate" validate:"required"`
	Provider     string      `json:"provider" validate:"max=200"`
	Notes        string      `json:"notes"`
	CompanyID    *uint       `json:"companyId"`
}

type UpdateMedicalInput struct {
	EmployeeName *string     `json:"employeeName" validate:"omitempty,min=1,max=200"`
	Type         *string     `json:"type" validate:"omitempty,min=1,max=100"`
	IssueDate    *types.Date `json:"issueDate"`
	ExpiryDate   *types.Date `json:"expiryDate"`
	Provider     *string     `json:"provider" validate:"omitempty,max=200"`
	Notes        *string     `json:"notes"`
}

func (in CreateMedicalInput) toModel(companyID *uint) *models.Medical {
	return &models.Medical{
		CompanyID:    companyID,
		EmployeeName: strings.TrimSpace(in.EmployeeName),
		Type:         strings.TrimSpace(in.Type),
		IssueDate:    *in.IssueDate,
		ExpiryDate:   *in.ExpiryDate,
		Provider:     strings.TrimSpace(in.Provider),
		Notes:        in.Notes,
	}
}

func (in UpdateMedicalInput) apply(m *models.Medical) {
	if in.EmployeeName != nil {
		m.EmployeeName = strings.TrimSpace(*in.EmployeeName)
	}
	if in.Type != nil {
		m.Type = strings.TrimSpace(*in.Type)
	}
	if in.IssueDate != nil {
		m.IssueDate = *in.IssueDate
	}
	if in.ExpiryDate != nil {
		m.ExpiryDate = *in.ExpiryDate
	}
	if in.Provider != nil {
		m.Provider = strings.TrimSpace(*in.Provider)
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}
