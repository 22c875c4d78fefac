package repo

import (
	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/pkg/auth"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

// Scope restricts a query to the actor's company. Super users are unrestricted
// and callers without a company see nothing.
func Scope(actor auth.Actor) func(*gorm.DB) *gorm.DB {
	return ScopeColumn(actor, "company_id")
}

// ScopeColumn is Scope for joined queries where the company column needs a table prefix.
func ScopeColumn(actor auth.Actor, column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsSuper() {
			return db
		}
		if actor.CompanyID == nil {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", *actor.CompanyID)
	}
}

// CompanyFor picks the company a new record belongs to. Super users may
// target any company (or none); everyone else writes into their own.
func CompanyFor(actor auth.Actor, requested *uint) (*uint, error) {
	if actor.IsSuper() {
		if requested == nil {
			return actor.CompanyID, nil
		}
		id := *requested
		return &id, nil
	}
	if actor.CompanyID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user is not assigned to a company")
	}
	id := *actor.CompanyID
	return &id, nil
}
