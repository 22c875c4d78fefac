package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
)

// Contractor owns a long-lived upload token for self-service document upload.
type Contractor struct {
	ID            uint                 `gorm:"primaryKey" json:"id"`
	CompanyID     *uint                `gorm:"column:company_id;index" json:"companyId"`
	Name          string               `gorm:"column:name;not null" json:"name"`
	ContactPerson string               `gorm:"column:contact_person;not null;default:''" json:"contactPerson"`
	Email         string               `gorm:"column:email;not null;default:''" json:"email"`
	Phone         string               `gorm:"column:phone;not null;default:''" json:"phone"`
	Scope         string               `gorm:"column:scope;not null;default:''" json:"scope"`
	UploadToken   string               `gorm:"column:upload_token;not null;uniqueIndex" json:"uploadToken"`
	Documents     []ContractorDocument `gorm:"foreignKey:ContractorID" json:"documents,omitempty"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type ContractorDocument struct {
	ID           uint                    `gorm:"primaryKey" json:"id"`
	ContractorID uint                    `gorm:"column:contractor_id;not null;index" json:"contractorId"`
	Section      enums.ContractorSection `gorm:"column:section;not null" json:"section"`
	FileName     string                  `gorm:"column:file_name;not null" json:"fileName"`
	URL          string                  `gorm:"column:url;not null" json:"url"`
	ContentType  string                  `gorm:"column:content_type;not null" json:"contentType"`
	SizeBytes    int64                   `gorm:"column:size_bytes;not null" json:"sizeBytes"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
