package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/types"
)

var fixedNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func day(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func setup(t *testing.T) (Service, *db.Client, auth.Actor, uint) {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	svc, err := NewService(NewRepository(client.DB()), nil, func() time.Time { return fixedNow })
	require.NoError(t, err)
	return svc, client, auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID}, globex.ID
}

func TestSummaryAggregates(t *testing.T) {
	svc, client, actor, otherCompany := setup(t)
	gdb := client.DB()

	incident := func(company uint, occurred, typ, dept string, status enums.IncidentStatus) {
		c := company
		require.NoError(t, gdb.Create(&models.Incident{
			CompanyID: &c, Title: "x", Type: typ, Department: dept, Status: status,
			Severity: enums.IncidentSeverityLow, OccurredAt: day(t, occurred),
		}).Error)
	}
	own := *actor.CompanyID
	incident(own, "2026-06-01", "Slip", "Warehouse", enums.IncidentStatusOpen)
	incident(own, "2026-06-10", "Slip", "Warehouse", enums.IncidentStatusInvestigating)
	incident(own, "2026-03-03", "Burn", "Kitchen", enums.IncidentStatusClosed)
	incident(own, "2025-07-20", "Cut", "", enums.IncidentStatusClosed)
	incident(own, "2025-05-31", "Cut", "Workshop", enums.IncidentStatusClosed)
	incident(otherCompany, "2026-06-02", "Fall", "Yard", enums.IncidentStatusOpen)

	require.NoError(t, gdb.Create(&models.Certificate{
		CompanyID: &own, EmployeeName: "A", Type: "First aid",
		IssueDate: day(t, "2024-07-01"), ExpiryDate: day(t, "2026-07-01"),
	}).Error)
	require.NoError(t, gdb.Create(&models.Certificate{
		CompanyID: &own, EmployeeName: "B", Type: "First aid",
		IssueDate: day(t, "2023-01-01"), ExpiryDate: day(t, "2026-01-01"),
	}).Error)

	summary := svc.Summary(context.Background(), actor)

	assert.Equal(t, int64(2), summary.Counts.OpenIncidents)
	assert.Equal(t, int64(1), summary.Counts.ExpiringCertificates)
	assert.Zero(t, summary.Counts.ExpiringMedicals)

	require.Len(t, summary.IncidentsByMonth, 12)
	assert.Equal(t, "2025-07", summary.IncidentsByMonth[0].Month)
	assert.Equal(t, int64(1), summary.IncidentsByMonth[0].Count)
	assert.Equal(t, "2026-06", summary.IncidentsByMonth[11].Month)
	assert.Equal(t, int64(2), summary.IncidentsByMonth[11].Count)
	assert.Equal(t, int64(1), summary.IncidentsByMonth[8].Count)
	assert.Zero(t, summary.IncidentsByMonth[1].Count)

	require.NotEmpty(t, summary.TopIncidentTypes)
	assert.Equal(t, LabelValue{Label: "Cut", Value: 2}, summary.TopIncidentTypes[0])
	for _, d := range summary.TopDepartments {
		assert.NotEmpty(t, d.Label)
		assert.NotEqual(t, "Yard", d.Label)
	}
	assert.Equal(t, LabelValue{Label: "Warehouse", Value: 2}, summary.TopDepartments[0])
}

func TestSummaryFallsBackToZeroes(t *testing.T) {
	svc, client, actor, _ := setup(t)
	require.NoError(t, client.DB().Migrator().DropTable(&models.Incident{}))

	summary := svc.Summary(context.Background(), actor)
	assert.Equal(t, Counts{}, summary.Counts)
	require.Len(t, summary.IncidentsByMonth, 12)
	for _, p := range summary.IncidentsByMonth {
		assert.Zero(t, p.Count)
	}
	assert.Empty(t, summary.TopIncidentTypes)
	assert.NotNil(t, summary.TopIncidentTypes)
}
