package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

// NCRReport is a non-conformance report made of line items.
type NCRReport struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CompanyID   *uint           `gorm:"column:company_id;index" json:"companyId"`
	Title       string          `gorm:"column:title;not null" json:"title"`
	Number      string          `gorm:"column:number;not null;default:''" json:"number"`
	Area        string          `gorm:"column:area;not null;default:''" json:"area"`
	RaisedBy    string          `gorm:"column:raised_by;not null;default:''" json:"raisedBy"`
	Date        types.Date      `gorm:"column:date;not null" json:"date"`
	Status      enums.NCRStatus `gorm:"column:status;not null;default:'open'" json:"status"`
	Description string          `gorm:"column:description;not null;default:''" json:"description"`
	Items       []NCRItem       `gorm:"foreignKey:ReportID" json:"items,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (NCRReport) TableName() string { return "ncr_reports" }

type NCRItem struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	ReportID          uint            `gorm:"column:report_id;not null;index" json:"reportId"`
	Description       string          `gorm:"column:description;not null" json:"description"`
	CorrectiveAction  string          `gorm:"column:corrective_action;not null;default:''" json:"correctiveAction"`
	ResponsiblePerson string          `gorm:"column:responsible_person;not null;default:''" json:"responsiblePerson"`
	DueDate           *types.Date     `gorm:"column:due_date" json:"dueDate"`
	Status            enums.NCRStatus `gorm:"column:status;not null;default:'open'" json:"status"`
	Images            []NCRImage      `gorm:"foreignKey:ItemID" json:"images,omitempty"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (NCRItem) TableName() string { return "ncr_items" }

type NCRImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"column:item_id;not null;index" json:"itemId"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	FileName  string    `gorm:"column:file_name;not null" json:"fileName"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (NCRImage) TableName() string { return "ncr_images" }
