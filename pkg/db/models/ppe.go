package models

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type PPEItemType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID *uint     `gorm:"column:company_id;index" json:"companyId"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Category  string    `gorm:"column:category;not null;default:''" json:"category"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PPEItemType) TableName() string { return "ppe_item_types" }

// PPEStock is the on-hand count for one item type and size.
type PPEStock struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CompanyID    *uint        `gorm:"column:company_id;index" json:"companyId"`
	ItemTypeID   uint         `gorm:"column:item_type_id;not null;uniqueIndex:idx_ppe_stock_item_size,priority:1" json:"itemTypeId"`
	ItemType     *PPEItemType `gorm:"foreignKey:ItemTypeID" json:"itemType,omitempty"`
	Size         string       `gorm:"column:size;not null;default:'';uniqueIndex:idx_ppe_stock_item_size,priority:2" json:"size"`
	Quantity     int          `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ReorderLevel int          `gorm:"column:reorder_level;not null;default:0" json:"reorderLevel"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PPEStock) TableName() string { return "ppe_stock" }

type PPEPerson struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CompanyID      *uint     `gorm:"column:company_id;index" json:"companyId"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	EmployeeNumber string    `gorm:"column:employee_number;not null;default:''" json:"employeeNumber"`
	Department     string    `gorm:"column:department;not null;default:''" json:"department"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PPEPerson) TableName() string { return "ppe_persons" }

// PPEIssue records equipment handed to a person, pending their signature.
type PPEIssue struct {
	ID         uint                 `gorm:"primaryKey" json:"id"`
	CompanyID  *uint                `gorm:"column:company_id;index" json:"companyId"`
	PersonID   uint                 `gorm:"column:person_id;not null;index" json:"personId"`
	Person     *PPEPerson           `gorm:"foreignKey:PersonID" json:"person,omitempty"`
	ItemTypeID uint                 `gorm:"column:item_type_id;not null;index" json:"itemTypeId"`
	ItemType   *PPEItemType         `gorm:"foreignKey:ItemTypeID" json:"itemType,omitempty"`
	Size       string               `gorm:"column:size;not null;default:''" json:"size"`
	Quantity   int                  `gorm:"column:quantity;not null" json:"quantity"`
	IssueDate  types.Date           `gorm:"column:issue_date;not null" json:"issueDate"`
	Status     enums.PPEIssueStatus `gorm:"column:status;not null;default:'pending_signature'" json:"status"`
	SignToken  *string              `gorm:"column:sign_token;uniqueIndex" json:"-"`
	Signature  *string              `gorm:"column:signature" json:"signature"`
	SignedAt   *time.Time           `gorm:"column:signed_at" json:"signedAt"`
	CreatedAt  time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (PPEIssue) TableName() string { return "ppe_issues" }
