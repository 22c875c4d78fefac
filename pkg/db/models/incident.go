package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type Incident struct {
	ID                uint                   `gorm:"primaryKey" json:"id"`
	CompanyID         *uint                  `gorm:"column:company_id;index" json:"companyId"`
	Title             string                 `gorm:"column:title;not null" json:"title"`
	Description       string                 `gorm:"column:description;not null;default:''" json:"description"`
	Type              string                 `gorm:"column:type;not null;default:''" json:"type"`
	Severity          enums.IncidentSeverity `gorm:"column:severity;not null;default:'low'" json:"severity"`
	Status            enums.IncidentStatus   `gorm:"column:status;not null;default:'open'" json:"status"`
	Location          string                 `gorm:"column:location;not null;default:''" json:"location"`
	Department        string                 `gorm:"column:department;not null;default:''" json:"department"`
	ReportedBy        string                 `gorm:"column:reported_by;not null;default:''" json:"reportedBy"`
	OccurredAt        types.Date             `gorm:"column:occurred_at;not null" json:"occurredAt"`
	RootCause         string                 `gorm:"column:root_cause;not null;default:''" json:"rootCause"`
	CorrectiveActions string                 `gorm:"column:corrective_actions;not null;default:''" json:"correctiveActions"`
	Images            []IncidentImage        `gorm:"foreignKey:IncidentID" json:"images,omitempty"`
	Team              []IncidentTeamMember   `gorm:"foreignKey:IncidentID" json:"team,omitempty"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type IncidentImage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IncidentID uint      `gorm:"column:incident_id;not null;index" json:"incidentId"`
	URL        string    `gorm:"column:url;not null" json:"url"`
	FileName   string    `gorm:"column:file_name;not null" json:"fileName"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

type IncidentTeamMember struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	IncidentID uint      `gorm:"column:incident_id;not null;index" json:"incidentId"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Role       string    `gorm:"column:role;not null;default:''" json:"role"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

type Inspection struct {
	ID        uint                   `gorm:"primaryKey" json:"id"`
	CompanyID *uint                  `gorm:"column:company_id;index" json:"companyId"`
	Title     string                 `gorm:"column:title;not null" json:"title"`
	Type      string                 `gorm:"column:type;not null;default:''" json:"type"`
	Area      string                 `gorm:"column:area;not null;default:''" json:"area"`
	Inspector string                 `gorm:"column:inspector;not null;default:''" json:"inspector"`
	Date      types.Date             `gorm:"column:date;not null" json:"date"`
	Status    enums.InspectionStatus `gorm:"column:status;not null;default:'scheduled'" json:"status"`
	Findings  string                 `gorm:"column:findings;not null;default:''" json:"findings"`
	Score     *int                   `gorm:"column:score" json:"score"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
