package enums

type IncidentSeverity string

const (
	IncidentSeverityLow      IncidentSeverity = "low"
	IncidentSeverityMedium   IncidentSeverity = "medium"
	IncidentSeverityHigh     IncidentSeverity = "high"
	IncidentSeverityCritical IncidentSeverity = "critical"
)

var ValidIncidentSeverities = []IncidentSeverity{
	IncidentSeverityLow,
	IncidentSeverityMedium,
	IncidentSeverityHigh,
	IncidentSeverityCritical,
}

func (s IncidentSeverity) IsValid() bool { return contains(ValidIncidentSeverities, s) }

type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "open"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusClosed        IncidentStatus = "closed"
)

var ValidIncidentStatuses = []IncidentStatus{
	IncidentStatusOpen,
	IncidentStatusInvestigating,
	IncidentStatusClosed,
}

func (s IncidentStatus) IsValid() bool { return contains(ValidIncidentStatuses, s) }

func ParseIncidentStatus(value string) (IncidentStatus, error) {
	return parse(ValidIncidentStatuses, value, "incident status")
}

func ParseIncidentSeverity(value string) (IncidentSeverity, error) {
	return parse(ValidIncidentSeverities, value, "incident severity")
}
