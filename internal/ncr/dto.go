package ncr

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateReportInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Number      string          `json:"number" validate:"max=50"`
	Area        string          `json:"area" validate:"max=200"`
	RaisedBy    string          `json:"raisedBy" validate:"max=200"`
	Date        *types.Date     `json:"date" validate:"required"`
	Status      enums.NCRStatus `json:"status"`
	Description string          `json:"description"`
	CompanyID   *uint           `json:"companyId"`
}

type UpdateReportInput struct {
	Title       *string          `json:"title" validate:"omitempty,min=1,max=200"`
	Number      *string          `json:"number" validate:"omitempty,max=50"`
	Area        *string          `json:"area" validate:"omitempty,max=200"`
	RaisedBy    *string          `json:"raisedBy" validate:"omitempty,max=200"`
	Date        *types.Date      `json:"date"`
	Status      *enums.NCRStatus `json:"status"`
	Description *string          `json:"description"`
}

type ItemInput struct {
	Description       string          `json:"description" validate:"required"`
	CorrectiveAction  string          `json:"correctiveAction"`
	ResponsiblePerson string          `json:"responsiblePerson" validate:"max=200"`
	DueDate           *types.Date     `json:"dueDate"`
	Status            enums.NCRStatus `json:"status"`
}

type UpdateItemInput struct {
	Description       *string          `json:"description" validate:"omitempty,min=1"`
	CorrectiveAction  *string          `json:"correctiveAction"`
	ResponsiblePerson *string          `json:"responsiblePerson" validate:"omitempty,max=200"`
	DueDate           *types.Date      `json:"dueDate"`
	Status            *enums.NCRStatus `json:"status"`
}

func (in CreateReportInput) toModel(companyID *uint) *models.NCRReport {
	status := in.Status
	if status == "" {
		status = enums.NCRStatusOpen
	}
	m := &models.NCRReport{
		CompanyID:   companyID,
		Title:       strings.TrimSpace(in.Title),
		Number:      strings.TrimSpace(in.Number),
		Area:        strings.TrimSpace(in.Area),
		RaisedBy:    strings.TrimSpace(in.RaisedBy),
		Status:      status,
		Description: in.Description,
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	return m
}

func (in UpdateReportInput) apply(m *models.NCRReport) {
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Number != nil {
		m.Number = strings.TrimSpace(*in.Number)
	}
	if in.Area != nil {
		m.Area = strings.TrimSpace(*in.Area)
	}
	if in.RaisedBy != nil {
		m.RaisedBy = strings.TrimSpace(*in.RaisedBy)
	}
	if in.Date != nil {
		m.Date = *in.Date
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
}

func (in UpdateItemInput) apply(m *models.NCRItem) {
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.CorrectiveAction != nil {
		m.CorrectiveAction = *in.CorrectiveAction
	}
	if in.ResponsiblePerson != nil {
		m.ResponsiblePerson = strings.TrimSpace(*in.ResponsiblePerson)
	}
	if in.DueDate != nil {
		m.DueDate = in.DueDate
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
}
