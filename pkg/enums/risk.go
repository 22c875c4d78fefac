package enums

import "strings"

type RiskLevel string

const (
	RiskLevelLow     RiskLevel = "low"
	RiskLevelMedium  RiskLevel = "medium"
	RiskLevelHigh    RiskLevel = "high"
	RiskLevelExtreme RiskLevel = "extreme"
)

var ValidRiskLevels = []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelExtreme}

func (l RiskLevel) IsValid() bool { return contains(ValidRiskLevels, l) }

// NormalizeRiskLevel maps free text (as returned by a model) onto a level,
// falling back to medium.
func NormalizeRiskLevel(value string) RiskLevel {
	v := RiskLevel(strings.ToLower(strings.TrimSpace(value)))
	if v.IsValid() {
		return v
	}
	if v == "critical" {
		return RiskLevelExtreme
	}
	return RiskLevelMedium
}

type RiskAssessmentStatus string

const (
	RiskAssessmentStatusDraft  RiskAssessmentStatus = "draft"
	RiskAssessmentStatusSigned RiskAssessmentStatus = "signed"
)

var ValidRiskAssessmentStatuses = []RiskAssessmentStatus{RiskAssessmentStatusDraft, RiskAssessmentStatusSigned}

func (s RiskAssessmentStatus) IsValid() bool { return contains(ValidRiskAssessmentStatuses, s) }
