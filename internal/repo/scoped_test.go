package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

func uintPtr(v uint) *uint { return &v }

func TestScopedIsolatesCompanies(t *testing.T) {
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	store := NewScoped[models.Inspection](client.DB())
	ctx := context.Background()

	mine := models.Inspection{CompanyID: uintPtr(acme.ID), Title: "Fire exits", Date: types.Today()}
	theirs := models.Inspection{CompanyID: uintPtr(globex.ID), Title: "Ladders", Date: types.Today()}
	require.NoError(t, store.Create(ctx, &mine))
	require.NoError(t, store.Create(ctx, &theirs))

	admin := auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: uintPtr(acme.ID)}
	rows, err := store.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Fire exits", rows[0].Title)

	_, err = store.Get(ctx, admin, theirs.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	super := auth.Actor{UserID: 2, Role: enums.RoleSuper}
	rows, err = store.List(ctx, super)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	orphan := auth.Actor{UserID: 3, Role: enums.RoleUser}
	rows, err = store.List(ctx, orphan)
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err := store.Count(ctx, admin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestScopedDeleteReportsMissingRows(t *testing.T) {
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	store := NewScoped[models.Chemical](client.DB())
	ctx := context.Background()

	row := models.Chemical{CompanyID: uintPtr(globex.ID), Name: "Acetone"}
	require.NoError(t, store.Create(ctx, &row))

	admin := auth.Actor{Role: enums.RoleAdmin, CompanyID: uintPtr(acme.ID)}
	err := store.Delete(ctx, admin, row.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	super := auth.Actor{Role: enums.RoleSuper}
	require.NoError(t, store.Delete(ctx, super, row.ID))
}

func TestUpdateColumnsTxLeavesOtherColumns(t *testing.T) {
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	store := NewScoped[models.Inspection](client.DB())
	ctx := context.Background()
	admin := auth.Actor{Role: enums.RoleAdmin, CompanyID: uintPtr(acme.ID)}

	row := models.Inspection{CompanyID: uintPtr(acme.ID), Title: "Fire exits", Area: "North", Date: types.Today()}
	require.NoError(t, store.Create(ctx, &row))

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		stale, err := store.GetForUpdateTx(tx, admin, row.ID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Inspection{}).Where("id = ?", row.ID).Update("area", "South").Error; err != nil {
			return err
		}
		stale.Title = "Fire exits and stairs"
		stale.Area = "ignored"
		return store.UpdateColumnsTx(tx, stale, []string{"title"})
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, admin, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fire exits and stairs", got.Title)
	assert.Equal(t, "South", got.Area)

	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	outsider := auth.Actor{Role: enums.RoleAdmin, CompanyID: uintPtr(globex.ID)}
	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := store.GetForUpdateTx(tx, outsider, row.ID)
		return err
	})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCompanyFor(t *testing.T) {
	super := auth.Actor{Role: enums.RoleSuper}
	got, err := CompanyFor(super, uintPtr(9))
	require.NoError(t, err)
	assert.Equal(t, uint(9), *got)

	admin := auth.Actor{Role: enums.RoleAdmin, CompanyID: uintPtr(4)}
	got, err = CompanyFor(admin, uintPtr(9))
	require.NoError(t, err)
	assert.Equal(t, uint(4), *got)

	_, err = CompanyFor(auth.Actor{Role: enums.RoleUser}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))
}

func TestMapError(t *testing.T) {
	assert.Nil(t, MapError(nil, "incident", "load"))
	assert.True(t, pkgerrors.IsCode(MapError(gorm.ErrRecordNotFound, "incident", "load"), pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.IsCode(MapError(gorm.ErrDuplicatedKey, "user", "create"), pkgerrors.CodeConflict))
	assert.True(t, pkgerrors.IsCode(MapError(errors.New("FOREIGN KEY constraint failed"), "company", "delete"), pkgerrors.CodeConflict))
	assert.True(t, pkgerrors.IsCode(MapError(errors.New("boom"), "incident", "load"), pkgerrors.CodeDependency))

	typed := pkgerrors.New(pkgerrors.CodeStateConflict, "already signed")
	assert.Same(t, typed, MapError(typed, "appointment", "sign"))
}
