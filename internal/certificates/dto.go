package certificates

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateCertificateInput struct {
	EmployeeName      string      `json:"employeeName" validate:"required,max=200"`
	Type              string      `json:"type" validate:"required,max=100"`
	CertificateNumber string      `json:"certificateNumber" validate:"max=100"`
	Provider          string      `json:"provider" validate:"max=200"`
	IssueDate         *types.Date `json:"issueDate" validate:"required"`
	ExpiryDate        *types.Date `json:"expiryDate" validate:"required"`
	CompanyID         *uint       `json:"companyId"`
}

type UpdateCertificateInput struct {
	EmployeeName      *string     `json:"employeeName" validate:"omitempty,min=1,max=200"`
	Type              *string     `json:"type" validate:"omitempty,min=1,max=100"`
	CertificateNumber *string     `json:"certificateNumber" validate:"omitempty,max=100"`
	Provider          *string     `json:"provider" validate:"omitempty,max=200"`
	IssueDate         *types.Date `json:"issueDate"`
	ExpiryDate        *types.Date `json:"expiryDate"`
}

func (in CreateCertificateInput) toModel(companyID *uint) *models.Certificate {
	return &models.Certificate{
		CompanyID:         companyID,
		EmployeeName:      strings.TrimSpace(in.EmployeeName),
		Type:              strings.TrimSpace(in.Type),
		CertificateNumber: strings.TrimSpace(in.CertificateNumber),
		Provider:          strings.TrimSpace(in.Provider),
		IssueDate:         *in.IssueDate,
		ExpiryDate:        *in.ExpiryDate,
	}
}

func (in UpdateCertificateInput) apply(m *models.Certificate) {
	trim := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	trim(&m.EmployeeName, in.EmployeeName)
	trim(&m.Type, in.Type)
	trim(&m.CertificateNumber, in.CertificateNumber)
	trim(&m.Provider, in.Provider)
	if in.IssueDate != nil {
		m.IssueDate = *in.IssueDate
	}
	if in.ExpiryDate != nil {
		m.ExpiryDate = *in.ExpiryDate
	}
}
