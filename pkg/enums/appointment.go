package enums

type AppointmentStatus string

const (
	AppointmentStatusDraft            AppointmentStatus = "draft"
	AppointmentStatusPendingAppointer AppointmentStatus = "pending_appointer"
	AppointmentStatusPendingAppointee AppointmentStatus = "pending_appointee"
	AppointmentStatusAppointerSigned  AppointmentStatus = "appointer_signed"
	AppointmentStatusAppointeeSigned  AppointmentStatus = "appointee_signed"
	AppointmentStatusCompleted        AppointmentStatus = "completed"
	AppointmentStatusSigned           AppointmentStatus = "signed"
)

var ValidAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusDraft,
	AppointmentStatusPendingAppointer,
	AppointmentStatusPendingAppointee,
	AppointmentStatusAppointerSigned,
	AppointmentStatusAppointeeSigned,
	AppointmentStatusCompleted,
	AppointmentStatusSigned,
}

func (s AppointmentStatus) IsValid() bool { return contains(ValidAppointmentStatuses, s) }

// IsFullySigned reports whether the status claims both signatures are present.
func (s AppointmentStatus) IsFullySigned() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusSigned
}

// SigningParty identifies which side of an appointment a token or signature belongs to.
type SigningParty string

const (
	SigningPartyAppointer SigningParty = "appointer"
	SigningPartyAppointee SigningParty = "appointee"
)

var ValidSigningParties = []SigningParty{SigningPartyAppointer, SigningPartyAppointee}

func (p SigningParty) IsValid() bool { return contains(ValidSigningParties, p) }

// PendingStatus is the status an appointment takes while waiting on this party.
func (p SigningParty) PendingStatus() AppointmentStatus {
	if p == SigningPartyAppointer {
		return AppointmentStatusPendingAppointer
	}
	return AppointmentStatusPendingAppointee
}

// Designation is one of the fixed statutory appointment types.
type Designation string

var ValidDesignations = []Designation{
	"Chief Executive Officer",
	"Assigned Person",
	"Health and Safety Representative",
	"Health and Safety Committee Member",
	"First Aider",
	"Fire Fighter",
	"Fire Marshal",
	"Evacuation Marshal",
	"Emergency Coordinator",
	"Incident Investigator",
	"Risk Assessor",
	"Safety Officer",
	"Stacking Supervisor",
	"Ladder Inspector",
	"Hand Tool Inspector",
	"Electrical Installation Supervisor",
	"Portable Electrical Equipment Inspector",
	"Lifting Machine Supervisor",
	"Lifting Machine Operator",
	"Lifting Tackle Inspector",
	"Forklift Operator",
	"Vessels Under Pressure Supervisor",
	"Hazardous Chemical Substances Supervisor",
	"Hazardous Chemical Substances Controller",
	"Construction Manager",
	"Construction Supervisor",
	"Construction Health and Safety Officer",
	"Fall Protection Planner",
	"Scaffold Inspector",
	"Excavation Supervisor",
	"Demolition Supervisor",
	"Temporary Works Designer",
	"Confined Space Supervisor",
	"Machinery Supervisor",
	"Environmental Officer",
}

func (d Designation) IsValid() bool { return contains(ValidDesignations, d) }

// AwaitingSignatureStatuses are the states where at least one party still has to sign.
var AwaitingSignatureStatuses = []AppointmentStatus{
	AppointmentStatusPendingAppointer,
	AppointmentStatusPendingAppointee,
	AppointmentStatusAppointerSigned,
	AppointmentStatusAppointeeSigned,
}
