package ppe

import (
	"time"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/types"
)

type ItemTypeInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	Category  string `json:"category" validate:"max=100"`
	CompanyID *uint  `json:"companyId"`
}

type UpdateItemTypeInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,max=100"`
}

// AddStockInput adds quantity to the (itemType, size) row, creating it when missing.
type AddStockInput struct {
	ItemTypeID   uint   `json:"itemTypeId" validate:"required"`
	Size         string `json:"size" validate:"max=50"`
	Quantity     int    `json:"quantity" validate:"min=0"`
	ReorderLevel *int   `json:"reorderLevel" validate:"omitempty,min=0"`
}

type UpdateStockInput struct {
	Quantity     *int `json:"quantity" validate:"omitempty,min=0"`
	ReorderLevel *int `json:"reorderLevel" validate:"omitempty,min=0"`
}

type PersonInput struct {
	Name           string `json:"name" validate:"required,max=200"`
	EmployeeNumber string `json:"employeeNumber" validate:"max=100"`
	Department     string `json:"department" validate:"max=200"`
	CompanyID      *uint  `json:"companyId"`
}

type UpdatePersonInput struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=200"`
	EmployeeNumber *string `json:"employeeNumber" validate:"omitempty,max=100"`
	Department     *string `json:"department" validate:"omitempty,max=200"`
}

type CreateIssueInput struct {
	PersonID   uint        `json:"personId" validate:"required"`
	ItemTypeID uint        `json:"itemTypeId" validate:"required"`
	Size       string      `json:"size" validate:"max=50"`
	Quantity   int         `json:"quantity" validate:"required,min=1"`
	IssueDate  *types.Date `json:"issueDate"`
	// Email, when set and mail is configured, receives the signing link.
	Email string `json:"email" validate:"omitempty,email"`
}

// IssueResult is a newly created issue plus the link its recipient signs at.
type IssueResult struct {
	models.PPEIssue
	SignLink string `json:"signLink"`
	Emailed  bool   `json:"emailed"`
}

// SignInput is the body of both the admin and public sign routes.
// IssueID is optional on the public route.
type SignInput struct {
	IssueID   *uint  `json:"issueId"`
	Token     string `json:"token" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// PublicIssueView is what the holder of a sign token may see.
type PublicIssueView struct {
	ID        uint       `json:"id"`
	Person    string     `json:"person"`
	Item      string     `json:"item"`
	Size      string     `json:"size"`
	Quantity  int        `json:"quantity"`
	IssueDate types.Date `json:"issueDate"`
	Status    string     `json:"status"`
	SignedAt  *time.Time `json:"signedAt"`
}
