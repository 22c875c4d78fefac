package repo

import (
	"github.com/delanoso/safetyhub/pkg/db"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

// MapError converts persistence failures into typed API errors. Errors that
// are already typed pass through untouched.
func MapError(err error, entity, action string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	switch {
	case db.IsNotFound(err):
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	case db.IsUniqueViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" already exists")
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" is still referenced")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action+" "+entity)
}
