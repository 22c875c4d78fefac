package risk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/llm"
	"github.com/delanoso/safetyhub/pkg/metrics"
)

// Drafter suggests controls for an activity. *llm.Client satisfies it.
type Drafter interface {
	DraftRiskAssessment(ctx context.Context, in llm.RiskDraftInput) (llm.RiskDraft, error)
}

type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.RiskAssessment, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.RiskAssessment, error)
	Create(ctx context.Context, actor auth.Actor, input CreateAssessmentInput) (*models.RiskAssessment, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateAssessmentInput) (*models.RiskAssessment, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	Generate(ctx context.Context, input GenerateInput) (*llm.RiskDraft, error)
	Sign(ctx context.Context, actor auth.Actor, id uint, input SignInput) (*models.RiskAssessment, error)
}

type Repository struct {
	repo.Scoped[models.RiskAssessment]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.RiskAssessment](db)}
}

// MarkSigned signs a draft, reporting false when it was already signed.
func (r *Repository) MarkSigned(ctx context.Context, actor auth.Actor, id uint, signature, signedBy string, at time.Time) (bool, error) {
	res := r.DB(ctx).Model(&models.RiskAssessment{}).
		Scopes(repo.Scope(actor)).
		Where("id = ? AND status = ?", id, enums.RiskAssessmentStatusDraft).
		Updates(map[string]any{
			"status":    enums.RiskAssessmentStatusSigned,
			"signature": signature,
			"signed_by": signedBy,
			"signed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type service struct {
	repo    *Repository
	drafter Drafter
	metrics *metrics.Business
	now     func() time.Time
}

// NewService builds the service. A nil drafter leaves Generate unconfigured.
func NewService(r *Repository, drafter Drafter, m *metrics.Business, now func() time.Time) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("risk assessment repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: r, drafter: drafter, metrics: m, now: now}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.RiskAssessment, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "risk assessment", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.RiskAssessment, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "risk assessment", "load")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateAssessmentInput) (*models.RiskAssessment, error) {
	if input.Date == nil || input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := input.toModel(companyID)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if !row.RiskLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid riskLevel")
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "risk assessment", "create")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateAssessmentInput) (*models.RiskAssessment, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "risk assessment", "load")
	}
	input.apply(row)
	if row.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if !row.RiskLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid riskLevel")
	}
	if input.Status != nil {
		switch enums.RiskAssessmentStatus(*input.Status) {
		case enums.RiskAssessmentStatusDraft:
			row.Status = enums.RiskAssessmentStatusDraft
			row.Signature, row.SignedBy, row.SignedAt = nil, nil, nil
		case enums.RiskAssessmentStatusSigned:
			if row.Status != enums.RiskAssessmentStatusSigned {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "use the sign action to sign a risk assessment")
			}
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "risk assessment", "update")
	}
	return row, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Delete(ctx, actor, id), "risk assessment", "delete")
}

func (s *service) Generate(ctx context.Context, input GenerateInput) (*llm.RiskDraft, error) {
	if strings.TrimSpace(input.Activity) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity is required")
	}
	if s.drafter == nil {
		return nil, notConfigured()
	}
	draft, err := s.drafter.DraftRiskAssessment(ctx, llm.RiskDraftInput{
		Activity:   input.Activity,
		Hazards:    input.Hazards,
		Department: input.Department,
	})
	if errors.Is(err, llm.ErrNotConfigured) {
		return nil, notConfigured()
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generate risk assessment")
	}
	return &draft, nil
}

func notConfigured() error {
	return pkgerrors.NotConfigured("AI risk assessment drafting", "set SAFETYHUB_OPENAI_API_KEY to enable it")
}

func (s *service) Sign(ctx context.Context, actor auth.Actor, id uint, input SignInput) (*models.RiskAssessment, error) {
	signature := strings.TrimSpace(input.Signature)
	signedBy := strings.TrimSpace(input.SignedBy)
	if signature == "" || signedBy == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature and signedBy are required")
	}
	if _, err := s.repo.Get(ctx, actor, id); err != nil {
		return nil, repo.MapError(err, "risk assessment", "load")
	}
	ok, err := s.repo.MarkSigned(ctx, actor, id, signature, signedBy, s.now().UTC())
	if err != nil {
		return nil, repo.MapError(err, "risk assessment", "sign")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "risk assessment has already been signed")
	}
	s.metrics.SignatureCaptured("risk_assessment")
	return s.Get(ctx, actor, id)
}
