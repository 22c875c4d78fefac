package enums

import "github.com/delanoso/safetyhub/pkg/types"

// ExpiryStatus is derived from an expiry date at read time and never stored.
type ExpiryStatus string

const (
	ExpiryStatusValid    ExpiryStatus = "valid"
	ExpiryStatusExpiring ExpiryStatus = "expiring"
	ExpiryStatusExpired  ExpiryStatus = "expired"
)

// ExpiringWindowDays is how far ahead a record counts as expiring.
const ExpiringWindowDays = 30

var ValidExpiryStatuses = []ExpiryStatus{ExpiryStatusValid, ExpiryStatusExpiring, ExpiryStatusExpired}

func (s ExpiryStatus) IsValid() bool { return contains(ValidExpiryStatuses, s) }

func ParseExpiryStatus(value string) (ExpiryStatus, error) {
	return parse(ValidExpiryStatuses, value, "expiry status")
}

// ExpiryStatusOn classifies an expiry date as seen on day today.
func ExpiryStatusOn(expiry, today types.Date) ExpiryStatus {
	switch {
	case expiry.Before(today):
		return ExpiryStatusExpired
	case !today.AddDays(ExpiringWindowDays).Before(expiry):
		return ExpiryStatusExpiring
	default:
		return ExpiryStatusValid
	}
}
