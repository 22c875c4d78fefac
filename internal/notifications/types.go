package notifications

import "github.com/delanoso/safetyhub/pkg/types"

type Kind string

const (
	KindCertificateExpiring Kind = "certificate_expiring"
	KindCertificateExpired  Kind = "certificate_expired"
	KindMedicalExpiring     Kind = "medical_expiring"
	KindMedicalExpired      Kind = "medical_expired"
	KindAppointmentPending  Kind = "appointment_pending_signature"
	KindPPEPending          Kind = "ppe_pending_signature"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Notification is derived on read from the compliance registers; nothing is stored.
type Notification struct {
	Kind     Kind        `json:"kind"`
	Severity Severity    `json:"severity"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	RecordID uint        `json:"recordId"`
	Link     string      `json:"link"`
	Date     *types.Date `json:"date,omitempty"`
}
