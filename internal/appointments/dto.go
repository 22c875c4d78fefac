package appointments

import (
	"strings"
	"time"

	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

type CreateAppointmentInput struct {
	Type               string      `json:"type" validate:"required"`
	Appointee          string      `json:"appointee" validate:"required,max=200"`
	Appointer          string      `json:"appointer" validate:"required,max=200"`
	Department         string      `json:"department" validate:"required,max=200"`
	Date               *types.Date `json:"date" validate:"required"`
	ExpiryDate         *types.Date `json:"expiryDate"`
	Notes              string      `json:"notes"`
	Status             string      `json:"status"`
	AppointerSignature *string     `json:"appointerSignature"`
	AppointeeSignature *string     `json:"appointeeSignature"`
	CompanyID          *uint       `json:"companyId"`
}

type UpdateAppointmentInput struct {
	Type               *string     `json:"type"`
	Appointee          *string     `json:"appointee" validate:"omitempty,min=1,max=200"`
	Appointer          *string     `json:"appointer" validate:"omitempty,min=1,max=200"`
	Department         *string     `json:"department" validate:"omitempty,min=1,max=200"`
	Date               *types.Date `json:"date"`
	ExpiryDate         *types.Date `json:"expiryDate"`
	Notes              *string     `json:"notes"`
	Status             *string     `json:"status"`
	AppointerSignature *string     `json:"appointerSignature"`
	AppointeeSignature *string     `json:"appointeeSignature"`
}

// SignatureRequestInput is the body of POST /api/appointments/{id}/request-signature.
type SignatureRequestInput struct {
	Party string `json:"party" validate:"required,oneof=appointer appointee"`
	Email string `json:"email" validate:"omitempty,email"`
}

// SignatureRequestResult always carries the link; Emailed reports delivery.
type SignatureRequestResult struct {
	Link    string                  `json:"link"`
	Party   enums.SigningParty      `json:"party"`
	Status  enums.AppointmentStatus `json:"status"`
	Emailed bool                    `json:"emailed"`
}

// PublicSignInput is the body of POST /api/public/appointments/sign.
// AppointmentID is optional and lets a consumed token answer "already signed"
// rather than "invalid token".
type PublicSignInput struct {
	AppointmentID *uint  `json:"appointmentId"`
	Token         string `json:"token" validate:"required"`
	Signature     string `json:"signature" validate:"required"`
}

// PublicView is what a token holder may see before signing.
type PublicView struct {
	ID         uint                    `json:"id"`
	Type       enums.Designation       `json:"type"`
	Appointee  string                  `json:"appointee"`
	Appointer  string                  `json:"appointer"`
	Department string                  `json:"department"`
	Date       types.Date              `json:"date"`
	Status     enums.AppointmentStatus `json:"status"`
	Party      enums.SigningParty      `json:"party"`
	SignedAt   *time.Time              `json:"signedAt"`
}

func (in CreateAppointmentInput) toModel(companyID *uint, now time.Time) *models.Appointment {
	m := &models.Appointment{
		CompanyID:  companyID,
		Type:       enums.Designation(strings.TrimSpace(in.Type)),
		Appointee:  strings.TrimSpace(in.Appointee),
		Appointer:  strings.TrimSpace(in.Appointer),
		Department: strings.TrimSpace(in.Department),
		Date:       *in.Date,
		ExpiryDate: in.ExpiryDate,
		Notes:      in.Notes,
		Status:     enums.AppointmentStatusDraft,
	}
	if in.Status != "" {
		m.Status = enums.AppointmentStatus(in.Status)
	}
	setSignature(&m.AppointerSignature, &m.AppointerSignedAt, in.AppointerSignature, now)
	setSignature(&m.AppointeeSignature, &m.AppointeeSignedAt, in.AppointeeSignature, now)
	return m
}

// apply copies the supplied fields onto m and returns the columns it changed.
// Storing a party's signature retires that party's outstanding signing link.
func (in UpdateAppointmentInput) apply(m *models.Appointment, now time.Time) []string {
	var cols []string
	if in.Type != nil {
		m.Type = enums.Designation(strings.TrimSpace(*in.Type))
		cols = append(cols, "type")
	}
	if in.Appointee != nil {
		m.Appointee = strings.TrimSpace(*in.Appointee)
		cols = append(cols, "appointee")
	}
	if in.Appointer != nil {
		m.Appointer = strings.TrimSpace(*in.Appointer)
		cols = append(cols, "appointer")
	}
	if in.Department != nil {
		m.Department = strings.TrimSpace(*in.Department)
		cols = append(cols, "department")
	}
	if in.Date != nil {
		m.Date = *in.Date
		cols = append(cols, "date")
	}
	if in.ExpiryDate != nil {
		m.ExpiryDate = in.ExpiryDate
		cols = append(cols, "expiry_date")
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
		cols = append(cols, "notes")
	}
	if setSignature(&m.AppointerSignature, &m.AppointerSignedAt, in.AppointerSignature, now) {
		m.AppointerToken = nil
		cols = append(cols, "appointer_signature", "appointer_signed_at", "appointer_token")
	}
	if setSignature(&m.AppointeeSignature, &m.AppointeeSignedAt, in.AppointeeSignature, now) {
		m.AppointeeToken = nil
		cols = append(cols, "appointee_signature", "appointee_signed_at", "appointee_token")
	}
	return cols
}

// setSignature stores a new signature and stamps it, reporting whether
// anything changed. An empty string is ignored.
func setSignature(dst **string, signedAt **time.Time, value *string, now time.Time) bool {
	if value == nil || strings.TrimSpace(*value) == "" {
		return false
	}
	if *dst != nil && **dst == *value {
		return false
	}
	v := *value
	t := now
	*dst = &v
	*signedAt = &t
	return true
}
