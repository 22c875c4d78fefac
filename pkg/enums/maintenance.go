package enums

import "github.com/delanoso/safetyhub/pkg/types"

type MaintenanceFrequency string

const (
	FrequencyWeekly     MaintenanceFrequency = "weekly"
	FrequencyMonthly    MaintenanceFrequency = "monthly"
	FrequencyQuarterly  MaintenanceFrequency = "quarterly"
	FrequencyBiannually MaintenanceFrequency = "biannually"
	FrequencyAnnually   MaintenanceFrequency = "annually"
)

var ValidMaintenanceFrequencies = []MaintenanceFrequency{
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencyBiannually,
	FrequencyAnnually,
}

func (f MaintenanceFrequency) IsValid() bool { return contains(ValidMaintenanceFrequencies, f) }

// Next returns the date the following service falls due.
func (f MaintenanceFrequency) Next(from types.Date) types.Date {
	switch f {
	case FrequencyWeekly:
		return from.AddDays(7)
	case FrequencyQuarterly:
		return from.AddMonths(3)
	case FrequencyBiannually:
		return from.AddMonths(6)
	case FrequencyAnnually:
		return from.AddMonths(12)
	default:
		return from.AddMonths(1)
	}
}
