package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

func day(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestListOrdersBySeverityAndScopes(t *testing.T) {
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	gdb := client.DB()
	now := func() time.Time { return time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC) }

	svc, err := NewService(NewRepository(gdb), nil, now)
	require.NoError(t, err)
	actor := auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID}

	require.NoError(t, gdb.Create(&models.Certificate{
		CompanyID: &acme.ID, EmployeeName: "Lindiwe", Type: "First aid",
		IssueDate: day(t, "2024-07-01"), ExpiryDate: day(t, "2026-07-01"),
	}).Error)
	require.NoError(t, gdb.Create(&models.Medical{
		CompanyID: &acme.ID, EmployeeName: "Johan", Type: "Annual",
		IssueDate: day(t, "2025-01-01"), ExpiryDate: day(t, "2026-01-01"),
	}).Error)
	require.NoError(t, gdb.Create(&models.Medical{
		CompanyID: &acme.ID, EmployeeName: "Valid", Type: "Annual",
		IssueDate: day(t, "2026-01-01"), ExpiryDate: day(t, "2027-01-01"),
	}).Error)
	require.NoError(t, gdb.Create(&models.Appointment{
		CompanyID: &acme.ID, Type: "First Aider", Appointee: "Ayesha", Appointer: "CEO",
		Department: "Ops", Date: day(t, "2026-06-01"), Status: enums.AppointmentStatusAppointerSigned,
	}).Error)
	require.NoError(t, gdb.Create(&models.Medical{
		CompanyID: &globex.ID, EmployeeName: "Other", Type: "Annual",
		IssueDate: day(t, "2025-01-01"), ExpiryDate: day(t, "2026-01-01"),
	}).Error)

	list := svc.List(context.Background(), actor)
	require.Len(t, list, 3)
	assert.Equal(t, KindMedicalExpired, list[0].Kind)
	assert.Equal(t, SeverityCritical, list[0].Severity)
	assert.Contains(t, list[0].Message, "Johan")
	assert.Equal(t, KindCertificateExpiring, list[1].Kind)
	assert.Equal(t, KindAppointmentPending, list[2].Kind)
	assert.Contains(t, list[2].Message, "waiting for the appointee")
}

func TestListReturnsEmptyOnError(t *testing.T) {
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	require.NoError(t, client.DB().Migrator().DropTable(&models.Medical{}))

	svc, err := NewService(NewRepository(client.DB()), nil, nil)
	require.NoError(t, err)
	list := svc.List(context.Background(), auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID})
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
