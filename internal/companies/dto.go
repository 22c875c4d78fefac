package companies

// CreateCompanyInput is the payload for POST /api/companies.
type CreateCompanyInput struct {
	Name      string  `json:"name" validate:"required,max=200"`
	UserLimit *int    `json:"userLimit" validate:"omitempty,min=1,max=100000"`
	LogoURL   *string `json:"logoUrl" validate:"omitempty,url"`
}

// UpdateCompanyInput is the payload for PATCH /api/companies/{id}.
type UpdateCompanyInput struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	UserLimit *int    `json:"userLimit" validate:"omitempty,min=1,max=100000"`
	LogoURL   *string `json:"logoUrl" validate:"omitempty,url"`
}

const defaultUserLimit = 10
