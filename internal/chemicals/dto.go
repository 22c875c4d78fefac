package chemicals

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateChemicalInput struct {
	Name        string           `json:"name" validate:"required,max=200"`
	CASNumber   string           `json:"casNumber" validate:"max=50"`
	Supplier    string           `json:"supplier" validate:"max=200"`
	Location    string           `json:"location" validate:"max=200"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        string           `json:"unit" validate:"max=20"`
	HazardClass string           `json:"hazardClass" validate:"max=100"`
	SDSURL      *string          `json:"sdsUrl" validate:"omitempty,url"`
	SDSExpiry   *types.Date      `json:"sdsExpiry"`
	Notes       string           `json:"notes"`
	CompanyID   *uint            `json:"companyId"`
}

type UpdateChemicalInput struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CASNumber   *string          `json:"casNumber" validate:"omitempty,max=50"`
	Supplier    *string          `json:"supplier" validate:"omitempty,max=200"`
	Location    *string          `json:"location" validate:"omitempty,max=200"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Unit        *string          `json:"unit" validate:"omitempty,max=20"`
	HazardClass *string          `json:"hazardClass" validate:"omitempty,max=100"`
	SDSURL      *string          `json:"sdsUrl" validate:"omitempty,url"`
	SDSExpiry   *types.Date      `json:"sdsExpiry"`
	Notes       *string          `json:"notes"`
}

func (in CreateChemicalInput) toModel(companyID *uint) *models.Chemical {
	m := &models.Chemical{
		CompanyID:   companyID,
		Name:        strings.TrimSpace(in.Name),
		CASNumber:   strings.TrimSpace(in.CASNumber),
		Supplier:    strings.TrimSpace(in.Supplier),
		Location:    strings.TrimSpace(in.Location),
		Quantity:    decimal.Zero,
		Unit:        strings.TrimSpace(in.Unit),
		HazardClass: strings.TrimSpace(in.HazardClass),
		SDSURL:      in.SDSURL,
		SDSExpiry:   in.SDSExpiry,
		Notes:       in.Notes,
	}
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	return m
}

func (in UpdateChemicalInput) apply(m *models.Chemical) {
	trim := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	trim(&m.Name, in.Name)
	trim(&m.CASNumber, in.CASNumber)
	trim(&m.Supplier, in.Supplier)
	trim(&m.Location, in.Location)
	trim(&m.Unit, in.Unit)
	trim(&m.HazardClass, in.HazardClass)
	if in.Quantity != nil {
		m.Quantity = *in.Quantity
	}
	if in.SDSURL != nil {
		m.SDSURL = in.SDSURL
	}
	if in.SDSExpiry != nil {
		m.SDSExpiry = in.SDSExpiry
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
}
