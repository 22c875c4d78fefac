package ppe

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/email"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/links"
)

const signBase = "https://app.test/sign/ppe/"

type recordingMailer struct{ sent []email.Message }

func (m *recordingMailer) Configured() bool { return true }

func (m *recordingMailer) Send(_ context.Context, msg email.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	svc    Service
	repo   *Repository
	mailer *recordingMailer
	admin  auth.Actor
	other  auth.Actor
}

func setup(t *testing.T) fixture {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	globex := dbtest.SeedCompany(t, client, "Globex", 10)
	mailer := &recordingMailer{}
	r := NewRepository(client.DB())
	svc, err := NewService(ServiceParams{
		Repo:   r,
		Tx:     client,
		Mailer: mailer,
		Links:  links.NewBuilder("https://app.test"),
		Now:    func() time.Time { return time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return fixture{
		svc:    svc,
		repo:   r,
		mailer: mailer,
		admin:  auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID},
		other:  auth.Actor{UserID: 2, Role: enums.RoleAdmin, CompanyID: &globex.ID},
	}
}

func intPtr(v int) *int { return &v }

func (f fixture) seedTypeAndPerson(t *testing.T) (*models.PPEItemType, *models.PPEPerson) {
	t.Helper()
	ctx := context.Background()
	itemType, err := f.svc.CreateType(ctx, f.admin, ItemTypeInput{Name: "Safety boots", Category: "Footwear"})
	require.NoError(t, err)
	person, err := f.svc.CreatePerson(ctx, f.admin, PersonInput{Name: "Sipho Dlamini", EmployeeNumber: "E-17", Department: "Stores"})
	require.NoError(t, err)
	return itemType, person
}

func tokenFrom(t *testing.T, link string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(link, signBase), link)
	return strings.TrimPrefix(link, signBase)
}

func TestAddStockMergesMatchingRow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	itemType, _ := f.seedTypeAndPerson(t)

	first, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Size: "9", Quantity: 10})
	require.NoError(t, err)
	second, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Size: "9", Quantity: 5, ReorderLevel: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 15, second.Quantity)
	assert.Equal(t, 4, second.ReorderLevel)

	other, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Size: "10", Quantity: 1})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	rows, err := f.svc.ListStock(ctx, f.admin)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = f.svc.AddStock(ctx, f.other, AddStockInput{ItemTypeID: itemType.ID, Quantity: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestStockIsUniquePerTypeAndSize(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	itemType, _ := f.seedTypeAndPerson(t)

	first, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Size: "M", Quantity: 3, ReorderLevel: intPtr(2)})
	require.NoError(t, err)
	second, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Size: " M ", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 7, second.Quantity)
	assert.Equal(t, 2, second.ReorderLevel)

	dup := models.PPEStock{CompanyID: itemType.CompanyID, ItemTypeID: itemType.ID, Size: "M", Quantity: 9}
	err = f.repo.DB(ctx).Omit("ItemType").Create(&dup).Error
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	require.NoError(t, f.repo.DecrementStockTx(f.repo.DB(ctx), itemType.CompanyID, itemType.ID, "M", 5))
	rows, err := f.svc.ListStock(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestSignDecrementsStock(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	itemType, person := f.seedTypeAndPerson(t)

	stock, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Quantity: 10})
	require.NoError(t, err)

	issue, err := f.svc.CreateIssue(ctx, f.admin, CreateIssueInput{PersonID: person.ID, ItemTypeID: itemType.ID, Quantity: 3, Email: "sipho@acme.test"})
	require.NoError(t, err)
	assert.Equal(t, enums.PPEIssueStatusPendingSignature, issue.Status)
	assert.Equal(t, "2026-04-10", issue.IssueDate.String())
	assert.True(t, issue.Emailed)
	require.Len(t, f.mailer.sent, 1)
	token := tokenFrom(t, issue.SignLink)

	view, err := f.svc.PublicIssue(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Sipho Dlamini", view.Person)
	assert.Equal(t, "Safety boots", view.Item)

	signed, err := f.svc.PublicSign(ctx, SignInput{Token: token, Signature: "data:image/png;base64,AAA"})
	require.NoError(t, err)
	assert.Equal(t, string(enums.PPEIssueStatusSigned), signed.Status)

	after, err := f.repo.Stock.Get(ctx, f.admin, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Quantity)

	id := issue.ID
	_, err = f.svc.PublicSign(ctx, SignInput{IssueID: &id, Token: token, Signature: "data:image/png;base64,AAA"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict), "got %v", err)

	_, err = f.svc.PublicSign(ctx, SignInput{Token: token, Signature: "data:image/png;base64,AAA"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden), "got %v", err)

	_, err = f.svc.SignIssue(ctx, f.admin, issue.ID, SignInput{Token: token, Signature: "data:image/png;base64,AAA"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	after, err = f.repo.Stock.Get(ctx, f.admin, stock.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Quantity)
}

func TestSignFloorsStockAtZero(t *testing.T) {
	cases := []struct {
		name     string
		stock    int
		quantity int
		want     int
	}{
		{"partial", 5, 2, 3},
		{"exact", 4, 4, 0},
		{"oversold", 2, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := setup(t)
			ctx := context.Background()
			itemType, person := f.seedTypeAndPerson(t)
			stock, err := f.svc.AddStock(ctx, f.admin, AddStockInput{ItemTypeID: itemType.ID, Size: "L", Quantity: tc.stock})
			require.NoError(t, err)

			issue, err := f.svc.CreateIssue(ctx, f.admin, CreateIssueInput{PersonID: person.ID, ItemTypeID: itemType.ID, Size: "L", Quantity: tc.quantity})
			require.NoError(t, err)
			_, err = f.svc.SignIssue(ctx, f.admin, issue.ID, SignInput{Token: tokenFrom(t, issue.SignLink), Signature: "data:image/png;base64,AAA"})
			require.NoError(t, err)

			after, err := f.repo.Stock.Get(ctx, f.admin, stock.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, after.Quantity)
			want := tc.stock - tc.quantity
			if want < 0 {
				want = 0
			}
			assert.Equal(t, want, after.Quantity)
		})
	}
}

func TestSignWithWrongTokenIsForbidden(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	itemType, person := f.seedTypeAndPerson(t)
	issue, err := f.svc.CreateIssue(ctx, f.admin, CreateIssueInput{PersonID: person.ID, ItemTypeID: itemType.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = f.svc.SignIssue(ctx, f.admin, issue.ID, SignInput{Token: "nope", Signature: "data:image/png;base64,AAA"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden))

	_, err = f.svc.SignIssue(ctx, f.other, issue.ID, SignInput{Token: tokenFrom(t, issue.SignLink), Signature: "data:image/png;base64,AAA"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	missing := issue.ID + 50
	_, err = f.svc.PublicSign(ctx, SignInput{IssueID: &missing, Token: "x", Signature: "data:image/png;base64,AAA"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCreateIssueRejectsOtherCompanyPerson(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	itemType, _ := f.seedTypeAndPerson(t)
	outsider, err := f.svc.CreatePerson(ctx, f.other, PersonInput{Name: "Outsider"})
	require.NoError(t, err)

	_, err = f.svc.CreateIssue(ctx, f.admin, CreateIssueInput{PersonID: outsider.ID, ItemTypeID: itemType.ID, Quantity: 1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestExportIssues(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	itemType, person := f.seedTypeAndPerson(t)
	_, err := f.svc.CreateIssue(ctx, f.admin, CreateIssueInput{PersonID: person.ID, ItemTypeID: itemType.ID, Size: "9", Quantity: 2})
	require.NoError(t, err)

	data, err := f.svc.ExportIssues(ctx, f.admin)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = book.Close() }()
	rows, err := book.GetRows("PPE Issues")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Issue Date", rows[0][0])
	assert.Equal(t, "Sipho Dlamini", rows[1][1])
	assert.Equal(t, "Safety boots", rows[1][4])
	assert.Equal(t, "pending_signature", rows[1][8])
}
