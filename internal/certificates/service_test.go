package certificates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/media/mediatest"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

func day(t *testing.T, v string) *types.Date {
	t.Helper()
	d, err := types.ParseDate(v)
	require.NoError(t, err)
	return &d
}

func setup(t *testing.T) (Service, *mediatest.Store, auth.Actor) {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	uploads, store := mediatest.Service()
	now := func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	svc, err := NewService(NewRepository(client.DB()), uploads, now)
	require.NoError(t, err)
	return svc, store, auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID}
}

func TestStatusDerivedAndFiltered(t *testing.T) {
	svc, _, actor := setup(t)
	ctx := context.Background()

	expiries := map[string]string{
		"expired":        "2026-02-28",
		"due today":      "2026-03-01",
		"thirty days":    "2026-03-31",
		"thirty-one day": "2026-04-01",
	}
	for name, expiry := range expiries {
		_, err := svc.Create(ctx, actor, CreateCertificateInput{
			EmployeeName: name,
			Type:         "First Aid Level 1",
			IssueDate:    day(t, "2025-01-01"),
			ExpiryDate:   day(t, expiry),
		}, nil)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, actor, "")
	require.NoError(t, err)
	got := map[string]enums.ExpiryStatus{}
	for _, c := range all {
		got[c.EmployeeName] = c.Status
	}
	assert.Equal(t, enums.ExpiryStatusExpired, got["expired"])
	assert.Equal(t, enums.ExpiryStatusExpiring, got["due today"])
	assert.Equal(t, enums.ExpiryStatusExpiring, got["thirty days"])
	assert.Equal(t, enums.ExpiryStatusValid, got["thirty-one day"])

	for status, want := range map[enums.ExpiryStatus]int{
		enums.ExpiryStatusExpired:  1,
		enums.ExpiryStatusExpiring: 2,
		enums.ExpiryStatusValid:    1,
	} {
		rows, err := svc.List(ctx, actor, status)
		require.NoError(t, err)
		assert.Len(t, rows, want, "status %s", status)
		for _, r := range rows {
			assert.Equal(t, status, r.Status)
		}
	}

	_, err = svc.List(ctx, actor, "stale")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestExpiryBeforeIssueRejected(t *testing.T) {
	svc, _, actor := setup(t)
	_, err := svc.Create(context.Background(), actor, CreateCertificateInput{
		EmployeeName: "A",
		Type:         "Forklift",
		IssueDate:    day(t, "2026-01-10"),
		ExpiryDate:   day(t, "2026-01-01"),
	}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestFileReplacedAndRemoved(t *testing.T) {
	svc, store, actor := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, actor, CreateCertificateInput{
		EmployeeName: "Thandi",
		Type:         "Working at Heights",
		IssueDate:    day(t, "2026-01-01"),
		ExpiryDate:   day(t, "2027-01-01"),
	}, &media.File{Name: "cert.pdf", Body: mediatest.PDF})
	require.NoError(t, err)
	require.NotNil(t, created.FileURL)
	first := *created.FileURL

	updated, err := svc.Update(ctx, actor, created.ID, UpdateCertificateInput{}, &media.File{Name: "renewed.pdf", Body: mediatest.PDF})
	require.NoError(t, err)
	assert.NotEqual(t, first, *updated.FileURL)
	assert.Equal(t, "renewed.pdf", *updated.FileName)
	assert.False(t, store.Has(first))
	assert.Equal(t, 1, store.Len())

	require.NoError(t, svc.Delete(ctx, actor, created.ID))
	assert.Equal(t, 0, store.Len())
}
