package models

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&Company{},
		&User{},
		&Incident{},
		&IncidentImage{},
		&IncidentTeamMember{},
		&Inspection{},
		&Appointment{},
		&Medical{},
		&Certificate{},
		&PPEItemType{},
		&PPEStock{},
		&PPEPerson{},
		&PPEIssue{},
		&RiskAssessment{},
		&Contractor{},
		&ContractorDocument{},
		&Chemical{},
		&MaintenanceSchedule{},
		&MaintenanceItem{},
		&MaintenanceService{},
		&SHEElection{},
		&SHECandidate{},
		&SHEVoter{},
		&NCRReport{},
		&NCRItem{},
		&NCRImage{},
		&LegalDocument{},
		&LibraryFolder{},
		&LibraryFile{},
	}
}
