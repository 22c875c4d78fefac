package contractors

import (
	"strings"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
)

type CreateContractorInput struct {
	Name          string `json:"name" validate:"required,max=200"`
	ContactPerson string `json:"contactPerson" validate:"max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"max=50"`
	Scope         string `json:"scope"`
	CompanyID     *uint  `json:"companyId"`
}

type UpdateContractorInput struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contactPerson" validate:"omitempty,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Scope         *string `json:"scope"`
}

func (in UpdateContractorInput) apply(m *models.Contractor) {
	trim := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	trim(&m.Name, in.Name)
	trim(&m.ContactPerson, in.ContactPerson)
	trim(&m.Email, in.Email)
	trim(&m.Phone, in.Phone)
	if in.Scope != nil {
		m.Scope = *in.Scope
	}
}

// Detail is a contractor with its documents and self-service link.
type Detail struct {
	models.Contractor
	UploadLink string `json:"uploadLink"`
}

// Section is one slot of the safety file as shown to the contractor.
type Section struct {
	Key       enums.ContractorSection     `json:"key"`
	Label     string                      `json:"label"`
	Documents []models.ContractorDocument `json:"documents"`
}

// PublicView is what the upload token grants: no contact details, no token.
type PublicView struct {
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

func sectionLabel(s enums.ContractorSection) string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		switch {
		case w == "ppe":
			words[i] = "PPE"
		case w == "", i > 0 && (w == "and" || w == "of"):
		default:
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
