package enums

// ContractorSection is a named slot in a contractor's safety file.
type ContractorSection string

var ValidContractorSections = []ContractorSection{
	"letter_of_good_standing",
	"public_liability_insurance",
	"safety_file_index",
	"health_and_safety_policy",
	"risk_assessment",
	"method_statement",
	"fall_protection_plan",
	"appointments",
	"training_certificates",
	"medical_certificates",
	"ppe_register",
	"incident_reports",
	"other",
}

func (s ContractorSection) IsValid() bool { return contains(ValidContractorSections, s) }
