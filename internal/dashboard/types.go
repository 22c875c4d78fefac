package dashboard

// Counts are the headline tiles.
type Counts struct {
	OpenIncidents        int64 `json:"openIncidents"`
	PendingAppointments  int64 `json:"pendingAppointments"`
	ExpiringCertificates int64 `json:"expiringCertificates"`
	ExpiringMedicals     int64 `json:"expiringMedicals"`
	PendingPPESignatures int64 `json:"pendingPpeSignatures"`
	LowStockItems        int64 `json:"lowStockItems"`
}

// MonthPoint is one bucket of the incident series; Month is YYYY-MM.
type MonthPoint struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type LabelValue struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type Summary struct {
	Counts           Counts       `json:"counts"`
	IncidentsByMonth []MonthPoint `json:"incidentsByMonth"`
	TopIncidentTypes []LabelValue `json:"topIncidentTypes"`
	TopDepartments   []LabelValue `json:"topDepartments"`
}
