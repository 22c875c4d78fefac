package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
)

// Company is the tenant that owns users and compliance records.
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	UserLimit int       `gorm:"column:user_limit;not null;default:10" json:"userLimit"`
	LogoURL   *string   `gorm:"column:logo_url" json:"logoUrl"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// User is a login identity. Super users may have no company.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Name         string     `gorm:"column:name;not null;default:''" json:"name"`
	Role         enums.Role `gorm:"column:role;not null;default:'user'" json:"role"`
	CompanyID    *uint      `gorm:"column:company_id;index" json:"companyId"`
	Company      *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"lastLoginAt"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
