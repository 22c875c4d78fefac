package incidents

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

func occurred(t *testing.T) *types.Date {
	t.Helper()
	d, err := types.ParseDate("2026-03-02")
	require.NoError(t, err)
	return &d
}

func TestCreateDefaultsAndScope(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	incident, err := f.svc.Create(ctx, f.admin, CreateIncidentInput{Title: " Slip in warehouse ", OccurredAt: occurred(t)})
	require.NoError(t, err)
	assert.Equal(t, "Slip in warehouse", incident.Title)
	assert.Equal(t, enums.IncidentSeverityLow, incident.Severity)
	assert.Equal(t, enums.IncidentStatusOpen, incident.Status)
	assert.Equal(t, *f.admin.CompanyID, *incident.CompanyID)

	_, err = f.svc.Get(ctx, f.other, incident.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	rows, err := f.svc.List(ctx, f.other, Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	super := auth.Actor{Role: enums.RoleSuper}
	rows, err = f.svc.List(ctx, super, Filter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateIgnoresRequestedCompanyForAdmins(t *testing.T) {
	f := setup(t)
	incident, err := f.svc.Create(context.Background(), f.admin, CreateIncidentInput{
		Title:      "Spill",
		OccurredAt: occurred(t),
		CompanyID:  f.other.CompanyID,
	})
	require.NoError(t, err)
	assert.Equal(t, *f.admin.CompanyID, *incident.CompanyID)
}

func TestListFilters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Create(ctx, f.admin, CreateIncidentInput{Title: "A", Severity: "high", OccurredAt: occurred(t)})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.admin, CreateIncidentInput{Title: "B", Status: "closed", OccurredAt: occurred(t)})
	require.NoError(t, err)

	high, err := f.svc.List(ctx, f.admin, Filter{Severity: enums.IncidentSeverityHigh})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "A", high[0].Title)

	closed, err := f.svc.List(ctx, f.admin, Filter{Status: enums.IncidentStatusClosed})
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, "B", closed[0].Title)

	_, err = f.svc.List(ctx, f.admin, Filter{Status: "bogus"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	incident, err := f.svc.Create(ctx, f.admin, CreateIncidentInput{Title: "Fall", Location: "Dock 3", OccurredAt: occurred(t)})
	require.NoError(t, err)

	status := "investigating"
	updated, err := f.svc.Update(ctx, f.admin, incident.ID, UpdateIncidentInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, enums.IncidentStatusInvestigating, updated.Status)
	assert.Equal(t, "Dock 3", updated.Location)

	blank := "   "
	_, err = f.svc.Update(ctx, f.admin, incident.ID, UpdateIncidentInput{Title: &blank})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.svc.Update(ctx, f.other, incident.ID, UpdateIncidentInput{Status: &status})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestImagesTeamAndCascadeDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	incident, err := f.svc.Create(ctx, f.admin, CreateIncidentInput{Title: "Fire", OccurredAt: occurred(t)})
	require.NoError(t, err)

	images, err := f.svc.AddImages(ctx, f.admin, incident.ID, []media.File{
		{Name: "a.png", Body: mediatest.PNG},
		{Name: "b.png", Body: mediatest.PNG},
	})
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, 2, f.store.Len())

	_, err = f.svc.AddImages(ctx, f.admin, incident.ID, []media.File{{Name: "notes.pdf", Body: mediatest.PDF}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	member, err := f.svc.AddTeamMember(ctx, f.admin, incident.ID, TeamMemberInput{Name: "Jane Doe", Role: "Investigator"})
	require.NoError(t, err)

	loaded, err := f.svc.Get(ctx, f.admin, incident.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Images, 2)
	assert.Len(t, loaded.Team, 1)

	require.NoError(t, f.svc.DeleteImage(ctx, f.admin, incident.ID, images[0].ID))
	assert.False(t, f.store.Has(images[0].URL))
	assert.True(t, pkgerrors.IsCode(f.svc.DeleteImage(ctx, f.admin, incident.ID, images[0].ID), pkgerrors.CodeNotFound))

	assert.True(t, pkgerrors.IsCode(f.svc.DeleteTeamMember(ctx, f.other, incident.ID, member.ID), pkgerrors.CodeNotFound))

	require.NoError(t, f.svc.Delete(ctx, f.admin, incident.ID))
	assert.Equal(t, 0, f.store.Len())

	var images64, team64 int64
	require.NoError(t, f.repo.DB(ctx).Model(&models.IncidentImage{}).Count(&images64).Error)
	require.NoError(t, f.repo.DB(ctx).Model(&models.IncidentTeamMember{}).Count(&team64).Error)
	assert.Zero(t, images64)
	assert.Zero(t, team64)

	assert.True(t, pkgerrors.IsCode(f.svc.Delete(ctx, f.admin, incident.ID), pkgerrors.CodeNotFound))
}

func TestAddImagesWithoutStorage(t *testing.T) {
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	svc, err := NewService(NewRepository(client.DB()), client, media.NewService(nil, 0, nil, nil))
	require.NoError(t, err)
	actor := auth.Actor{Role: enums.RoleAdmin, CompanyID: &acme.ID}

	incident, err := svc.Create(context.Background(), actor, CreateIncidentInput{Title: "X", OccurredAt: occurred(t)})
	require.NoError(t, err)
	_, err = svc.AddImages(context.Background(), actor, incident.ID, []media.File{{Name: "a.png", Body: mediatest.PNG}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured))
}
