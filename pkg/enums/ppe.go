package enums

type PPEIssueStatus string

const (
	PPEIssueStatusPendingSignature PPEIssueStatus = "pending_signature"
	PPEIssueStatusSigned           PPEIssueStatus = "signed"
)

var ValidPPEIssueStatuses = []PPEIssueStatus{PPEIssueStatusPendingSignature, PPEIssueStatusSigned}

func (s PPEIssueStatus) IsValid() bool { return contains(ValidPPEIssueStatuses, s) }
