package ncr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/media/mediatest"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

type fixture struct {
	svc   Service
	repo  *Repository
	store *mediatest.Store
	admin auth.Actor
	other auth.Actor
}

func setup(t *testing.T) fixture {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	uploads, store := mediatest.Service()
	r := NewRepository(client.DB())
	svc, err := NewService(r, client, uploads)
	require.NoError(t, err)
	return fixture{
		svc:   svc,
		repo:  r,
		store: store,
		admin: auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID},
		other: auth.Actor{UserID: 2, Role: enums.RoleAdmin, CompanyID: &globex.ID},
	}
}

func reportInput(t *testing.T) CreateReportInput {
	t.Helper()
	d, err := types.ParseDate("2026-04-14")
	require.NoError(t, err)
	return CreateReportInput{Title: "Guarding missing", Number: "NCR-014", Area: "Line 3", Date: &d}
}

func TestReportItemsAndImages(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	report, err := f.svc.Create(ctx, f.admin, reportInput(t))
	require.NoError(t, err)
	assert.Equal(t, enums.NCRStatusOpen, report.Status)

	item, err := f.svc.AddItem(ctx, f.admin, report.ID, ItemInput{Description: "Chain guard removed", ResponsiblePerson: "J. Dube"})
	require.NoError(t, err)

	images, err := f.svc.AddImages(ctx, f.admin, item.ID, []media.File{{Name: "guard.png", Body: mediatest.PNG}})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.True(t, f.store.Has(images[0].URL))

	closed := enums.NCRStatusClosed
	updated, err := f.svc.UpdateItem(ctx, f.admin, item.ID, UpdateItemInput{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, enums.NCRStatusClosed, updated.Status)

	got, err := f.svc.Get(ctx, f.admin, report.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Len(t, got.Items[0].Images, 1)

	// children are reached through the owning report's company
	_, err = f.svc.UpdateItem(ctx, f.other, item.ID, UpdateItemInput{Status: &closed})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	err = f.svc.DeleteImage(ctx, f.other, images[0].ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	require.NoError(t, f.svc.DeleteImage(ctx, f.admin, images[0].ID))
	assert.Equal(t, 0, f.store.Len())
}

func TestDeleteReportCascades(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	report, err := f.svc.Create(ctx, f.admin, reportInput(t))
	require.NoError(t, err)
	for _, desc := range []string{"Spill kit empty", "Signage faded"} {
		item, err := f.svc.AddItem(ctx, f.admin, report.ID, ItemInput{Description: desc})
		require.NoError(t, err)
		_, err = f.svc.AddImages(ctx, f.admin, item.ID, []media.File{{Name: "x.png", Body: mediatest.PNG}})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, f.store.Len())

	require.NoError(t, f.svc.Delete(ctx, f.admin, report.ID))

	var items, images int64
	require.NoError(t, f.repo.DB(ctx).Model(&models.NCRItem{}).Count(&items).Error)
	require.NoError(t, f.repo.DB(ctx).Model(&models.NCRImage{}).Count(&images).Error)
	assert.Zero(t, items)
	assert.Zero(t, images)
	assert.Equal(t, 0, f.store.Len())
}

func TestInvalidStatusRejected(t *testing.T) {
	f := setup(t)
	in := reportInput(t)
	in.Status = "pending"
	_, err := f.svc.Create(context.Background(), f.admin, in)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
