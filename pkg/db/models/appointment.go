package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

// Appointment is a statutory designation signed by both appointer and appointee.
type Appointment struct {
	ID                 uint                    `gorm:"primaryKey" json:"id"`
	CompanyID          *uint                   `gorm:"column:company_id;index" json:"companyId"`
	Type               enums.Designation       `gorm:"column:type;not null" json:"type"`
	Appointee          string                  `gorm:"column:appointee;not null" json:"appointee"`
	Appointer          string                  `gorm:"column:appointer;not null" json:"appointer"`
	Department         string                  `gorm:"column:department;not null" json:"department"`
	Date               types.Date              `gorm:"column:date;not null" json:"date"`
	ExpiryDate         *types.Date             `gorm:"column:expiry_date" json:"expiryDate"`
	Notes              string                  `gorm:"column:notes;not null;default:''" json:"notes"`
	Status             enums.AppointmentStatus `gorm:"column:status;not null;default:'draft'" json:"status"`
	AppointerSignature *string                 `gorm:"column:appointer_signature" json:"appointerSignature"`
	AppointerSignedAt  *time.Time              `gorm:"column:appointer_signed_at" json:"appointerSignedAt"`
	AppointeeSignature *string                 `gorm:"column:appointee_signature" json:"appointeeSignature"`
	AppointeeSignedAt  *time.Time              `gorm:"column:appointee_signed_at" json:"appointeeSignedAt"`
	AppointerToken     *string                 `gorm:"column:appointer_token;uniqueIndex" json:"-"`
	AppointeeToken     *string                 `gorm:"column:appointee_token;uniqueIndex" json:"-"`
	CreatedAt          time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Medical is an occupational medical fitness record.
type Medical struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	CompanyID    *uint              `gorm:"column:company_id;index" json:"companyId"`
	EmployeeName string             `gorm:"column:employee_name;not null" json:"employeeName"`
	Type         string             `gorm:"column:type;not null" json:"type"`
	IssueDate    types.Date         `gorm:"column:issue_date;not null" json:"issueDate"`
	ExpiryDate   types.Date         `gorm:"column:expiry_date;not null;index" json:"expiryDate"`
	Provider     string             `gorm:"column:provider;not null;default:''" json:"provider"`
	Notes        string             `gorm:"column:notes;not null;default:''" json:"notes"`
	FileURL      *string            `gorm:"column:file_url" json:"fileUrl"`
	FileName     *string            `gorm:"column:file_name" json:"fileName"`
	Status       enums.ExpiryStatus `gorm:"-" json:"status"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Certificate is a training or competency certificate.
type Certificate struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	CompanyID         *uint              `gorm:"column:company_id;index" json:"companyId"`
	EmployeeName      string             `gorm:"column:employee_name;not null" json:"employeeName"`
	Type              string             `gorm:"column:type;not null" json:"type"`
	CertificateNumber string             `gorm:"column:certificate_number;not null;default:''" json:"certificateNumber"`
	Provider          string             `gorm:"column:provider;not null;default:''" json:"provider"`
	IssueDate         types.Date         `gorm:"column:issue_date;not null" json:"issueDate"`
	ExpiryDate        types.Date         `gorm:"column:expiry_date;not null;index" json:"expiryDate"`
	FileURL           *string            `gorm:"column:file_url" json:"fileUrl"`
	FileName          *string            `gorm:"column:file_name" json:"fileName"`
	Status            enums.ExpiryStatus `gorm:"-" json:"status"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
