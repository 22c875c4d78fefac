package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type MaintenanceSchedule struct {
	ID          uint                       `gorm:"primaryKey" json:"id"`
	CompanyID   *uint                      `gorm:"column:company_id;index" json:"companyId"`
	Name        string                     `gorm:"column:name;not null" json:"name"`
	Description string                     `gorm:"column:description;not null;default:''" json:"description"`
	Frequency   enums.MaintenanceFrequency `gorm:"column:frequency;not null" json:"frequency"`
	Items       []MaintenanceItem          `gorm:"foreignKey:ScheduleID" json:"items,omitempty"`
	CreatedAt   time.Time                  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type MaintenanceItem struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	ScheduleID      uint        `gorm:"column:schedule_id;not null;index" json:"scheduleId"`
	CompanyID       *uint       `gorm:"column:company_id;index" json:"companyId"`
	Name            string      `gorm:"column:name;not null" json:"name"`
	Location        string      `gorm:"column:location;not null;default:''" json:"location"`
	SerialNumber    string      `gorm:"column:serial_number;not null;default:''" json:"serialNumber"`
	LastServiceDate *types.Date `gorm:"column:last_service_date" json:"lastServiceDate"`
	NextServiceDate *types.Date `gorm:"column:next_service_date" json:"nextServiceDate"`
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type MaintenanceService struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	ItemID      uint                `gorm:"column:item_id;not null;index" json:"itemId"`
	CompanyID   *uint               `gorm:"column:company_id;index" json:"companyId"`
	ServiceDate types.Date          `gorm:"column:service_date;not null" json:"serviceDate"`
	PerformedBy string              `gorm:"column:performed_by;not null;default:''" json:"performedBy"`
	Notes       string              `gorm:"column:notes;not null;default:''" json:"notes"`
	Cost        decimal.NullDecimal `gorm:"column:cost;type:numeric(12,2)" json:"cost"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}
