package printing

import "github.com/delanoso/safetyhub/pkg/enums"

// DocType names a printable record.
type DocType string

const (
	DocAppointment    DocType = "appointment"
	DocIncident       DocType = "incident"
	DocInspection     DocType = "inspection"
	DocRiskAssessment DocType = "risk-assessment"
	DocPPEIssue       DocType = "ppe-issue"
	DocNCR            DocType = "ncr"
)

var ValidDocTypes = []DocType{
	DocAppointment,
	DocIncident,
	DocInspection,
	DocRiskAssessment,
	DocPPEIssue,
	DocNCR,
}

func (t DocType) IsValid() bool {
	for _, v := range ValidDocTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t DocType) title() string {
	switch t {
	case DocAppointment:
		return "Letter of Appointment"
	case DocIncident:
		return "Incident Report"
	case DocInspection:
		return "Inspection Report"
	case DocRiskAssessment:
		return "Risk Assessment"
	case DocPPEIssue:
		return "PPE Issue Record"
	case DocNCR:
		return "Non-Conformance Report"
	}
	return string(t)
}

func allowedTypes() []string { return enums.Strings(ValidDocTypes) }
