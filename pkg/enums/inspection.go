package enums

import "github.com/delanoso/safetyhub/pkg/types"

type InspectionStatus string

const (
	InspectionStatusScheduled InspectionStatus = "scheduled"
	InspectionStatusCompleted InspectionStatus = "completed"
	InspectionStatusOverdue   InspectionStatus = "overdue"
)

var ValidInspectionStatuses = []InspectionStatus{
	InspectionStatusScheduled,
	InspectionStatusCompleted,
	InspectionStatusOverdue,
}

func (s InspectionStatus) IsValid() bool { return contains(ValidInspectionStatuses, s) }

func ParseInspectionStatus(value string) (InspectionStatus, error) {
	return parse(ValidInspectionStatuses, value, "inspection status")
}

// Effective reports overdue for a scheduled inspection whose date has passed.
func (s InspectionStatus) Effective(date, today types.Date) InspectionStatus {
	if s == InspectionStatusScheduled && date.Before(today) {
		return InspectionStatusOverdue
	}
	return s
}
