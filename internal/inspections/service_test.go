package inspections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

func date(t *testing.T, v string) *types.Date {
	t.Helper()
	d, err := types.ParseDate(v)
	require.NoError(t, err)
	return &d
}

func setup(t *testing.T) (Service, auth.Actor) {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	now := func() time.Time { return time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC) }
	svc, err := NewService(NewRepository(client.DB()), now)
	require.NoError(t, err)
	return svc, auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID}
}

func TestScheduledInPastReadsOverdue(t *testing.T) {
	svc, actor := setup(t)
	ctx := context.Background()

	past, err := svc.Create(ctx, actor, CreateInspectionInput{Title: "Fire extinguishers", Date: date(t, "2026-06-01")})
	require.NoError(t, err)
	assert.Equal(t, enums.InspectionStatusOverdue, past.Status)

	future, err := svc.Create(ctx, actor, CreateInspectionInput{Title: "Ladders", Date: date(t, "2026-07-01")})
	require.NoError(t, err)
	assert.Equal(t, enums.InspectionStatusScheduled, future.Status)

	done, err := svc.Create(ctx, actor, CreateInspectionInput{Title: "Scaffold", Date: date(t, "2026-05-01"), Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, enums.InspectionStatusCompleted, done.Status)

	rows, err := svc.List(ctx, actor)
	require.NoError(t, err)
	byTitle := map[string]enums.InspectionStatus{}
	for _, r := range rows {
		byTitle[r.Title] = r.Status
	}
	assert.Equal(t, enums.InspectionStatusOverdue, byTitle["Fire extinguishers"])
	assert.Equal(t, enums.InspectionStatusScheduled, byTitle["Ladders"])
	assert.Equal(t, enums.InspectionStatusCompleted, byTitle["Scaffold"])
}

func TestUpdateRescheduleClearsOverdue(t *testing.T) {
	svc, actor := setup(t)
	ctx := context.Background()
	row, err := svc.Create(ctx, actor, CreateInspectionInput{Title: "Guards", Date: date(t, "2026-06-01")})
	require.NoError(t, err)

	score := 87
	updated, err := svc.Update(ctx, actor, row.ID, UpdateInspectionInput{Date: date(t, "2026-06-20"), Score: &score})
	require.NoError(t, err)
	assert.Equal(t, enums.InspectionStatusScheduled, updated.Status)
	require.NotNil(t, updated.Score)
	assert.Equal(t, 87, *updated.Score)
}

func TestCreateRequiresDate(t *testing.T) {
	svc, actor := setup(t)
	_, err := svc.Create(context.Background(), actor, CreateInspectionInput{Title: "No date"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDeleteScopedToCompany(t *testing.T) {
	svc, actor := setup(t)
	ctx := context.Background()
	row, err := svc.Create(ctx, actor, CreateInspectionInput{Title: "Dust", Date: date(t, "2026-06-20")})
	require.NoError(t, err)

	otherCompany := *actor.CompanyID + 100
	outsider := auth.Actor{Role: enums.RoleAdmin, CompanyID: &otherCompany}
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, outsider, row.ID), pkgerrors.CodeNotFound))
	require.NoError(t, svc.Delete(ctx, actor, row.ID))
}
