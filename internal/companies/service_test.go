package companies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newService(t *testing.T) (Service, *Repository) {
	t.Helper()
	client := dbtest.Open(t)
	r := NewRepository(client.DB())
	svc, err := NewService(r, client, media.NewService(nil, 0, nil, nil))
	require.NoError(t, err)
	return svc, r
}

func TestCreateDefaultsUserLimit(t *testing.T) {
	svc, _ := newService(t)
	company, err := svc.Create(context.Background(), CreateCompanyInput{Name: "  Acme Mining  "})
	require.NoError(t, err)
	assert.Equal(t, "Acme Mining", company.Name)
	assert.Equal(t, 10, company.UserLimit)

	custom, err := svc.Create(context.Background(), CreateCompanyInput{Name: "Globex", UserLimit: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, custom.UserLimit)
}

func TestUpdateAndCurrent(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	company, err := svc.Create(ctx, CreateCompanyInput{Name: "Acme"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, company.ID, UpdateCompanyInput{Name: strPtr("Acme Holdings"), UserLimit: intPtr(25)})
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", updated.Name)
	assert.Equal(t, 25, updated.UserLimit)

	_, err = svc.Update(ctx, company.ID, UpdateCompanyInput{Name: strPtr("  ")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	id := company.ID
	current, err := svc.Current(ctx, auth.Actor{Role: enums.RoleAdmin, CompanyID: &id})
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", current.Name)

	_, err = svc.Current(ctx, auth.Actor{Role: enums.RoleSuper})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestDeleteRefusedWhileUsersRemain(t *testing.T) {
	svc, r := newService(t)
	ctx := context.Background()
	company, err := svc.Create(ctx, CreateCompanyInput{Name: "Acme"})
	require.NoError(t, err)

	id := company.ID
	user := models.User{Email: "a@acme.test", PasswordHash: "x", Role: enums.RoleUser, CompanyID: &id}
	require.NoError(t, r.DB(ctx).Create(&user).Error)

	err = svc.Delete(ctx, company.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict), "got %v", err)

	require.NoError(t, r.DB(ctx).Delete(&user).Error)
	require.NoError(t, svc.Delete(ctx, company.ID))

	_, err = svc.Get(ctx, company.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.IsCode(svc.Delete(ctx, company.ID), pkgerrors.CodeNotFound))
}

func TestSetLogoRequiresStorage(t *testing.T) {
	svc, _ := newService(t)
	company, err := svc.Create(context.Background(), CreateCompanyInput{Name: "Acme"})
	require.NoError(t, err)

	_, err = svc.SetLogo(context.Background(), company.ID, media.File{Name: "logo.png", Body: []byte("\x89PNG\r\n\x1a\n")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured))
}
