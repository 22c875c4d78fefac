package maintenance

import (
	"github.com/shopspring/decimal"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type ScheduleInput struct {
	Name        string                     `json:"name" validate:"required,max=200"`
	Description string                     `json:"description"`
	Frequency   enums.MaintenanceFrequency `json:"frequency" validate:"required"`
	CompanyID   *uint                      `json:"companyId"`
}

type UpdateScheduleInput struct {
	Name        *string                     `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string                     `json:"description"`
	Frequency   *enums.MaintenanceFrequency `json:"frequency"`
}

type ItemInput struct {
	Name            string      `json:"name" validate:"required,max=200"`
	Location        string      `json:"location" validate:"max=200"`
	SerialNumber    string      `json:"serialNumber" validate:"max=100"`
	LastServiceDate *types.Date `json:"lastServiceDate"`
	NextServiceDate *types.Date `json:"nextServiceDate"`
}

type UpdateItemInput struct {
	Name            *string     `json:"name" validate:"omitempty,min=1,max=200"`
	Location        *string     `json:"location" validate:"omitempty,max=200"`
	SerialNumber    *string     `json:"serialNumber" validate:"omitempty,max=100"`
	LastServiceDate *types.Date `json:"lastServiceDate"`
	NextServiceDate *types.Date `json:"nextServiceDate"`
}

// ServiceLogInput records one completed service of an item.
type ServiceLogInput struct {
	ServiceDate *types.Date          `json:"serviceDate" validate:"required"`
	PerformedBy string               `json:"performedBy" validate:"max=200"`
	Notes       string               `json:"notes"`
	Cost        *decimal.NullDecimal `json:"cost"`
}
