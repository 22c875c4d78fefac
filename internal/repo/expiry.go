package repo

import (
	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

// ExpiryFilter matches rows whose expiry_date falls in the given derived
// status as seen on today.
func ExpiryFilter(status enums.ExpiryStatus, today types.Date) func(*gorm.DB) *gorm.DB {
	horizon := today.AddDays(enums.ExpiringWindowDays)
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case enums.ExpiryStatusExpired:
			return db.Where("expiry_date < ?", today)
		case enums.ExpiryStatusExpiring:
			return db.Where("expiry_date >= ? AND expiry_date <= ?", today, horizon)
		case enums.ExpiryStatusValid:
			return db.Where("expiry_date > ?", horizon)
		}
		return db
	}
}
