package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/delanoso/safetyhub/pkg/types"
)

// Chemical is an entry in the hazardous chemical substances register.
type Chemical struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CompanyID   *uint           `gorm:"column:company_id;index" json:"companyId"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	CASNumber   string          `gorm:"column:cas_number;not null;default:''" json:"casNumber"`
	Supplier    string          `gorm:"column:supplier;not null;default:''" json:"supplier"`
	Location    string          `gorm:"column:location;not null;default:''" json:"location"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric(14,3);not null;default:0" json:"quantity"`
	Unit        string          `gorm:"column:unit;not null;default:''" json:"unit"`
	HazardClass string          `gorm:"column:hazard_class;not null;default:''" json:"hazardClass"`
	SDSURL      *string         `gorm:"column:sds_url" json:"sdsUrl"`
	SDSFileName *string         `gorm:"column:sds_file_name" json:"sdsFileName"`
	SDSExpiry   *types.Date     `gorm:"column:sds_expiry" json:"sdsExpiry"`
	Notes       string          `gorm:"column:notes;not null;default:''" json:"notes"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
