package chemicals

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/media/mediatest"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

func setup(t *testing.T) (Service, *mediatest.Store, auth.Actor) {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	uploads, store := mediatest.Service()
	svc, err := NewService(NewRepository(client.DB()), uploads)
	require.NoError(t, err)
	return svc, store, auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID}
}

func TestCreateWithSDSAndExport(t *testing.T) {
	svc, store, actor := setup(t)
	ctx := context.Background()

	qty := decimal.RequireFromString("12.5")
	row, err := svc.Create(ctx, actor, CreateChemicalInput{
		Name:        "Sodium hypochlorite",
		CASNumber:   "7681-52-9",
		Quantity:    &qty,
		Unit:        "L",
		HazardClass: "Corrosive",
	}, &media.File{Name: "sds.pdf", Body: mediatest.PDF})
	require.NoError(t, err)
	require.NotNil(t, row.SDSURL)
	assert.Equal(t, 1, store.Len())

	loaded, err := svc.Get(ctx, actor, row.ID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(loaded.Quantity), "got %s", loaded.Quantity)

	data, err := svc.Export(ctx, actor)
	require.NoError(t, err)
	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = book.Close() }()
	rows, err := book.GetRows("Chemicals")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sodium hypochlorite", rows[1][0])
	assert.Equal(t, "12.5", rows[1][4])

	require.NoError(t, svc.Delete(ctx, actor, row.ID))
	assert.Equal(t, 0, store.Len())
}

func TestNegativeQuantityRejected(t *testing.T) {
	svc, _, actor := setup(t)
	qty := decimal.NewFromInt(-1)
	_, err := svc.Create(context.Background(), actor, CreateChemicalInput{Name: "Acetone", Quantity: &qty}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
