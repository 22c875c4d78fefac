package printing

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/pdf"
	"github.com/delanoso/safetyhub/pkg/types"
)

type stubRenderer struct {
	path    string
	cookies []*http.Cookie
	err     error
}

func (r *stubRenderer) Render(_ context.Context, path string, cookies []*http.Cookie) ([]byte, error) {
	r.path, r.cookies = path, cookies
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7"), nil
}

type fixture struct {
	views *Views
	admin auth.Actor
	other auth.Actor
	appt  models.Appointment
	ncr   models.NCRReport
}

func setup(t *testing.T) fixture {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme Mining", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	gdb := client.DB()

	d, err := types.ParseDate("2026-02-01")
	require.NoError(t, err)
	sig := "data:image/png;base64,iVBORw0KGgo="
	bad := "javascript:alert(1)"
	appt := models.Appointment{
		CompanyID: &acme.ID, Type: "First Aider", Appointee: "Naledi <b>M</b>", Appointer: "CEO",
		Department: "Plant", Date: d, Status: enums.AppointmentStatusAppointerSigned,
		AppointerSignature: &sig, AppointeeSignature: &bad,
	}
	require.NoError(t, gdb.Create(&appt).Error)

	report := models.NCRReport{CompanyID: &acme.ID, Title: "Guarding", Date: d, Status: enums.NCRStatusOpen}
	require.NoError(t, gdb.Create(&report).Error)
	require.NoError(t, gdb.Create(&models.NCRItem{ReportID: report.ID, Description: "Missing guard", Status: enums.NCRStatusOpen}).Error)

	views, err := NewViews(gdb, func() time.Time { return time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC) })
	require.NoError(t, err)
	return fixture{
		views: views,
		admin: auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID},
		other: auth.Actor{UserID: 2, Role: enums.RoleAdmin, CompanyID: &globex.ID},
		appt:  appt,
		ncr:   report,
	}
}

func TestAppointmentViewEscapesAndFiltersSignatures(t *testing.T) {
	f := setup(t)
	var buf bytes.Buffer
	require.NoError(t, f.views.Render(context.Background(), f.admin, DocAppointment, f.appt.ID, &buf))

	html := buf.String()
	assert.Contains(t, html, "Letter of Appointment")
	assert.Contains(t, html, "Acme Mining")
	assert.Contains(t, html, "Naledi &lt;b&gt;M&lt;/b&gt;")
	assert.Contains(t, html, `src="data:image/png;base64,iVBORw0KGgo="`)
	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, "Printed 2026-02-03")
}

func TestNCRViewListsItems(t *testing.T) {
	f := setup(t)
	var buf bytes.Buffer
	require.NoError(t, f.views.Render(context.Background(), f.admin, DocNCR, f.ncr.ID, &buf))
	assert.Contains(t, buf.String(), "Item 1")
	assert.Contains(t, buf.String(), "Missing guard")
}

func TestViewHidesOtherCompanies(t *testing.T) {
	f := setup(t)
	var buf bytes.Buffer
	err := f.views.Render(context.Background(), f.other, DocAppointment, f.appt.ID, &buf)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Zero(t, buf.Len())
}

func TestPDFRendersPrintPathWithCookies(t *testing.T) {
	f := setup(t)
	renderer := &stubRenderer{}
	svc, err := NewService(f.views, renderer, nil, nil)
	require.NoError(t, err)

	cookies := []*http.Cookie{{Name: "session", Value: "abc"}}
	doc, err := svc.PDF(context.Background(), f.admin, PDFRequest{Type: DocAppointment, ID: f.appt.ID}, cookies)
	require.NoError(t, err)
	assert.Equal(t, "/print/appointment/1", renderer.path)
	assert.Equal(t, cookies, renderer.cookies)
	assert.Equal(t, "appointment-1.pdf", doc.FileName)
}

func TestPDFErrors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	renderer := &stubRenderer{}
	svc, err := NewService(f.views, renderer, nil, nil)
	require.NoError(t, err)

	_, err = svc.PDF(ctx, f.admin, PDFRequest{Type: "invoice", ID: 1}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.PDF(ctx, f.admin, PDFRequest{Type: DocIncident, ID: 42}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Empty(t, renderer.path)

	var unconfigured *pdf.Renderer
	svc, err = NewService(f.views, unconfigured, nil, nil)
	require.NoError(t, err)
	_, err = svc.PDF(ctx, f.admin, PDFRequest{Type: DocAppointment, ID: f.appt.ID}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured))

	svc, err = NewService(f.views, &stubRenderer{err: errors.New("chrome crashed")}, nil, nil)
	require.NoError(t, err)
	_, err = svc.PDF(ctx, f.admin, PDFRequest{Type: DocNCR, ID: f.ncr.ID}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}
