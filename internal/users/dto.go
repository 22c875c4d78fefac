package users

import "github.com/delanoso/safetyhub/pkg/enums"

// CreateUserInput is the payload for POST /api/users.
type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	Name      string `json:"name" validate:"max=200"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin super"`
	CompanyID *uint  `json:"companyId"`
}

// UpdateUserInput is the payload for PATCH /api/users/{id}. Nil fields are left unchanged.
type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=128"`
	Name      *string `json:"name" validate:"omitempty,max=200"`
	Role      *string `json:"role" validate:"omitempty,oneof=user admin super"`
	CompanyID *uint   `json:"companyId"`
}

func roleOrDefault(raw string) (enums.Role, error) {
	if raw == "" {
		return enums.RoleUser, nil
	}
	return enums.ParseRole(raw)
}
