package incidents

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

// CreateIncidentInput is the body of POST /api/incidents.
type CreateIncidentInput struct {
	Title             string      `json:"title" validate:"required,max=300"`
	Description       string      `json:"description"`
	Type              string      `json:"type" validate:"max=100"`
	Severity          string      `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Status            string      `json:"status" validate:"omitempty,oneof=open investigating closed"`
	Location          string      `json:"location" validate:"max=200"`
	Department        string      `json:"department" validate:"max=200"`
	ReportedBy        string      `json:"reportedBy" validate:"max=200"`
	OccurredAt        *types.Date `json:"occurredAt" validate:"required"`
	RootCause         string      `json:"rootCause"`
	CorrectiveActions string      `json:"correctiveActions"`
	CompanyID         *uint       `json:"companyId"`
}

func (in CreateIncidentInput) toModel(companyID *uint) *models.Incident {
	m := &models.Incident{
		CompanyID:         companyID,
		Title:             strings.TrimSpace(in.Title),
		Description:       in.Description,
		Type:              strings.TrimSpace(in.Type),
		Severity:          enums.IncidentSeverityLow,
		Status:            enums.IncidentStatusOpen,
		Location:          strings.TrimSpace(in.Location),
		Department:        strings.TrimSpace(in.Department),
		ReportedBy:        strings.TrimSpace(in.ReportedBy),
		OccurredAt:        *in.OccurredAt,
		RootCause:         in.RootCause,
		CorrectiveActions: in.CorrectiveActions,
	}
	if in.Severity != "" {
		m.Severity = enums.IncidentSeverity(in.Severity)
	}
	if in.Status != "" {
		m.Status = enums.IncidentStatus(in.Status)
	}
	return m
}

// UpdateIncidentInput is the body of PATCH /api/incidents/{id}.
type UpdateIncidentInput struct {
	Title             *string     `json:"title" validate:"omitempty,min=1,max=300"`
	Description       *string     `json:"description"`
	Type              *string     `json:"type" validate:"omitempty,max=100"`
	Severity          *string     `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Status            *string     `json:"status" validate:"omitempty,oneof=open investigating closed"`
	Location          *string     `json:"location" validate:"omitempty,max=200"`
	Department        *string     `json:"department" validate:"omitempty,max=200"`
	ReportedBy        *string     `json:"reportedBy" validate:"omitempty,max=200"`
	OccurredAt        *types.Date `json:"occurredAt"`
	RootCause         *string     `json:"rootCause"`
	CorrectiveActions *string     `json:"correctiveActions"`
}

func (in UpdateIncidentInput) apply(m *models.Incident) {
	setTrimmed(&m.Title, in.Title)
	set(&m.Description, in.Description)
	setTrimmed(&m.Type, in.Type)
	if in.Severity != nil {
		m.Severity = enums.IncidentSeverity(*in.Severity)
	}
	if in.Status != nil {
		m.Status = enums.IncidentStatus(*in.Status)
	}
	setTrimmed(&m.Location, in.Location)
	setTrimmed(&m.Department, in.Department)
	setTrimmed(&m.ReportedBy, in.ReportedBy)
	if in.OccurredAt != nil {
		m.OccurredAt = *in.OccurredAt
	}
	set(&m.RootCause, in.RootCause)
	set(&m.CorrectiveActions, in.CorrectiveActions)
}

// Filter narrows GET /api/incidents.
type Filter struct {
	Status   enums.IncidentStatus
	Severity enums.IncidentSeverity
}

// TeamMemberInput is the body of POST /api/incidents/{id}/team.
type TeamMemberInput struct {
	Name string `json:"name" validate:"required,max=200"`
	Role string `json:"role" validate:"max=200"`
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
