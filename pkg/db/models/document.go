package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/types"
)

// LegalDocument is metadata about an act, regulation or standard.
type LegalDocument struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CompanyID     *uint       `gorm:"column:company_id;index" json:"companyId"`
	Title         string      `gorm:"column:title;not null" json:"title"`
	Category      string      `gorm:"column:category;not null;default:''" json:"category"`
	Reference     string      `gorm:"column:reference;not null;default:''" json:"reference"`
	EffectiveDate *types.Date `gorm:"column:effective_date" json:"effectiveDate"`
	Notes         string      `gorm:"column:notes;not null;default:''" json:"notes"`
	FileURL       *string     `gorm:"column:file_url" json:"fileUrl"`
	FileName      *string     `gorm:"column:file_name" json:"fileName"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type LibraryFolder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID *uint     `gorm:"column:company_id;index" json:"companyId"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type LibraryFile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CompanyID   *uint     `gorm:"column:company_id;index" json:"companyId"`
	FolderID    *uint     `gorm:"column:folder_id;index" json:"folderId"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	URL         string    `gorm:"column:url;not null" json:"url"`
	ContentType string    `gorm:"column:content_type;not null;default:''" json:"contentType"`
	SizeBytes   int64     `gorm:"column:size_bytes;not null;default:0" json:"sizeBytes"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
