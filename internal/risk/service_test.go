package risk

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/dbtest"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/llm"
	"github.com/delanoso/safetyhub/pkg/types"
)

type stubDrafter struct {
	draft llm.RiskDraft
	err   error
	got   llm.RiskDraftInput
}

func (s *stubDrafter) DraftRiskAssessment(_ context.Context, in llm.RiskDraftInput) (llm.RiskDraft, error) {
	s.got = in
	return s.draft, s.err
}

func setup(t *testing.T, drafter Drafter) (Service, auth.Actor) {
	t.Helper()
	client := dbtest.Open(t)
	acme := dbtest.SeedCompany(t, client, "Acme", 10)
	svc, err := NewService(NewRepository(client.DB()), drafter, nil, func() time.Time {
		return time.Date(2026, 5, 5, 9, 0, 0, 0, time.UTC)
	})
	require.NoError(t, err)
	return svc, auth.Actor{UserID: 1, Role: enums.RoleAdmin, CompanyID: &acme.ID}
}

func today(t *testing.T) *types.Date {
	t.Helper()
	d, err := types.ParseDate("2026-05-05")
	require.NoError(t, err)
	return &d
}

func TestGenerateNotConfigured(t *testing.T) {
	svc, _ := setup(t, nil)
	_, err := svc.Generate(context.Background(), GenerateInput{Activity: "Welding"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured))

	var unconfigured *llm.Client
	svc, _ = setup(t, unconfigured)
	_, err = svc.Generate(context.Background(), GenerateInput{Activity: "Welding"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured))
}

func TestGenerateUsesDrafter(t *testing.T) {
	drafter := &stubDrafter{draft: llm.RiskDraft{Controls: "Use screens", RiskLevel: enums.RiskLevelHigh}}
	svc, _ := setup(t, drafter)

	draft, err := svc.Generate(context.Background(), GenerateInput{Activity: "Welding", Department: "Workshop"})
	require.NoError(t, err)
	assert.Equal(t, "Use screens", draft.Controls)
	assert.Equal(t, enums.RiskLevelHigh, draft.RiskLevel)
	assert.Equal(t, "Workshop", drafter.got.Department)

	drafter.err = errors.New("rate limited")
	_, err = svc.Generate(context.Background(), GenerateInput{Activity: "Welding"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	_, err = svc.Generate(context.Background(), GenerateInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSignOnce(t *testing.T) {
	svc, actor := setup(t, nil)
	ctx := context.Background()
	row, err := svc.Create(ctx, actor, CreateAssessmentInput{Title: "Hot work", Date: today(t)})
	require.NoError(t, err)
	assert.Equal(t, enums.RiskLevelMedium, row.RiskLevel)
	assert.Equal(t, enums.RiskAssessmentStatusDraft, row.Status)

	signed, err := svc.Sign(ctx, actor, row.ID, SignInput{Signature: "data:image/png;base64,AAA", SignedBy: "Site manager"})
	require.NoError(t, err)
	assert.Equal(t, enums.RiskAssessmentStatusSigned, signed.Status)
	require.NotNil(t, signed.SignedBy)
	assert.Equal(t, "Site manager", *signed.SignedBy)

	_, err = svc.Sign(ctx, actor, row.ID, SignInput{Signature: "data:image/png;base64,BBB", SignedBy: "Someone else"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	draft := "draft"
	reopened, err := svc.Update(ctx, actor, row.ID, UpdateAssessmentInput{Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, enums.RiskAssessmentStatusDraft, reopened.Status)
	assert.Nil(t, reopened.Signature)

	signedStatus := "signed"
	_, err = svc.Update(ctx, actor, row.ID, UpdateAssessmentInput{Status: &signedStatus})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
