package auth

import "github.com/delanoso/safetyhub/pkg/enums"

// Actor is the resolved caller of an authenticated request.
type Actor struct {
	UserID    uint       `json:"id"`
	Email     string     `json:"email"`
	Role      enums.Role `json:"role"`
	CompanyID *uint      `json:"companyId"`
}

// IsSuper reports whether the actor may operate across companies.
func (a Actor) IsSuper() bool {
	return a.Role == enums.RoleSuper
}

// CanManage reports whether the actor is an admin or super user.
func (a Actor) CanManage() bool {
	return a.Role.CanManage()
}

// OwnsCompany reports whether a record belonging to companyID is visible to the actor.
func (a Actor) OwnsCompany(companyID *uint) bool {
	if a.IsSuper() {
		return true
	}
	if a.CompanyID == nil || companyID == nil {
		return false
	}
	return *a.CompanyID == *companyID
}
