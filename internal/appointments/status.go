package appointments

import (
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

// reconcile aligns the stored status with the signatures actually present.
// explicit is true when the caller asked for the current status in this write.
func reconcile(m *models.Appointment, explicit bool) error {
	if !m.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"allowed": enums.Strings(enums.ValidAppointmentStatuses)})
	}

	appointer := m.AppointerSignature != nil
	appointee := m.AppointeeSignature != nil

	if appointer && appointee {
		if m.Status != enums.AppointmentStatusCompleted {
			m.Status = enums.AppointmentStatusSigned
		}
		return nil
	}

	if explicit && m.Status.IsFullySigned() {
		return pkgerrors.New(pkgerrors.CodeValidation, "both appointer and appointee signatures are required before an appointment is signed")
	}

	switch {
	case appointer:
		if m.Status != enums.AppointmentStatusPendingAppointee {
			m.Status = enums.AppointmentStatusAppointerSigned
		}
	case appointee:
		if m.Status != enums.AppointmentStatusPendingAppointer {
			m.Status = enums.AppointmentStatusAppointeeSigned
		}
	default:
		switch m.Status {
		case enums.AppointmentStatusDraft, enums.AppointmentStatusPendingAppointer, enums.AppointmentStatusPendingAppointee:
		default:
			m.Status = enums.AppointmentStatusDraft
		}
	}
	return nil
}

func hasSigned(m *models.Appointment, party enums.SigningParty) bool {
	if party == enums.SigningPartyAppointer {
		return m.AppointerSignature != nil
	}
	return m.AppointeeSignature != nil
}
