package enums

type NCRStatus string

const (
	NCRStatusOpen   NCRStatus = "open"
	NCRStatusClosed NCRStatus = "closed"
)

var ValidNCRStatuses = []NCRStatus{NCRStatusOpen, NCRStatusClosed}

func (s NCRStatus) IsValid() bool { return contains(ValidNCRStatuses, s) }
