package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/email"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/links"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
	"github.com/delanoso/safetyhub/pkg/security"
)

// Service manages appointments and their two-party signing workflow.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.Appointment, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Appointment, error)
	Create(ctx context.Context, actor auth.Actor, input CreateAppointmentInput) (*models.Appointment, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateAppointmentInput) (*models.Appointment, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	RequestSignature(ctx context.Context, actor auth.Actor, id uint, input SignatureRequestInput) (*SignatureRequestResult, error)
	PublicView(ctx context.Context, token string) (*PublicView, error)
	PublicSign(ctx context.Context, input PublicSignInput) (*PublicView, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ServiceParams struct {
	Repo    *Repository
	Tx      txRunner
	Mailer  email.Sender
	Links   links.Builder
	Metrics *metrics.Business
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	repo    *Repository
	tx      txRunner
	mailer  email.Sender
	links   links.Builder
	metrics *metrics.Business
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("appointment repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:    params.Repo,
		tx:      params.Tx,
		mailer:  params.Mailer,
		links:   params.Links,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     now,
	}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.Appointment, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "appointment", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Appointment, error) {
	row, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "appointment", "load")
	}
	return row, nil
}

func validateFields(m *models.Appointment) error {
	if !m.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "type must be one of the listed designations").
			WithDetails(map[string]any{"allowed": enums.Strings(enums.ValidDesignations)})
	}
	if m.Appointee == "" || m.Appointer == "" || m.Department == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "appointee, appointer and department are required")
	}
	if m.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if m.ExpiryDate != nil && !m.ExpiryDate.IsZero() && m.ExpiryDate.Before(m.Date) {
		return pkgerrors.New(pkgerrors.CodeValidation, "expiryDate cannot be before date")
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateAppointmentInput) (*models.Appointment, error) {
	if input.Date == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := input.toModel(companyID, s.now().UTC())
	if err := validateFields(row); err != nil {
		return nil, err
	}
	if err := reconcile(row, input.Status != ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "appointment", "create")
	}
	return row, nil
}

// Update locks the row and writes only the columns the input touches, so a
// signature captured through a public link in the meantime is kept. Status is
// reconciled against the stored signatures after the write.
func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateAppointmentInput) (*models.Appointment, error) {
	var out *models.Appointment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.GetForUpdateTx(tx, actor, id)
		if err != nil {
			return err
		}
		cols := input.apply(row, s.now().UTC())
		if err := validateFields(row); err != nil {
			return err
		}
		if err := s.repo.UpdateColumnsTx(tx, row, cols); err != nil {
			return err
		}

		row, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			return err
		}
		if input.Status != nil {
			row.Status = enums.AppointmentStatus(*input.Status)
		}
		if err := reconcile(row, input.Status != nil); err != nil {
			return err
		}
		if err := s.repo.SetStatusTx(tx, row.ID, row.Status); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, repo.MapError(err, "appointment", "update")
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	return repo.MapError(s.repo.Delete(ctx, actor, id), "appointment", "delete")
}

func (s *service) RequestSignature(ctx context.Context, actor auth.Actor, id uint, input SignatureRequestInput) (*SignatureRequestResult, error) {
	party := enums.SigningParty(input.Party)
	if !party.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party must be appointer or appointee")
	}
	token, err := security.NewToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate signing token")
	}

	var row *models.Appointment
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		row, err = s.repo.GetForUpdateTx(tx, actor, id)
		if err != nil {
			return err
		}
		if hasSigned(row, party) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("the %s has already signed", party))
		}
		if party == enums.SigningPartyAppointer {
			row.AppointerToken = &token
		} else {
			row.AppointeeToken = &token
		}
		row.Status = party.PendingStatus()
		return s.repo.UpdateColumnsTx(tx, row, []string{tokenColumn(party), "status"})
	})
	if err != nil {
		return nil, repo.MapError(err, "appointment", "update")
	}

	result := &SignatureRequestResult{
		Link:   s.links.AppointmentSign(token),
		Party:  party,
		Status: row.Status,
	}
	to := strings.TrimSpace(input.Email)
	if to != "" && s.mailer != nil && s.mailer.Configured() {
		msg := email.SignatureRequest(to, string(party), string(row.Type), result.Link)
		if err := s.mailer.Send(ctx, msg); err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithField(ctx, "appointment_id", row.ID), "signature request email failed", err)
			}
		} else {
			result.Emailed = true
		}
	}
	return result, nil
}

func (s *service) PublicView(ctx context.Context, token string) (*PublicView, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
	}
	row, party, err := s.repo.FindByToken(ctx, token)
	if db.IsNotFound(err) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "signing link is invalid or has already been used")
	}
	if err != nil {
		return nil, repo.MapError(err, "appointment", "load")
	}
	return publicView(row, party), nil
}

func publicView(row *models.Appointment, party enums.SigningParty) *PublicView {
	view := &PublicView{
		ID:         row.ID,
		Type:       row.Type,
		Appointee:  row.Appointee,
		Appointer:  row.Appointer,
		Department: row.Department,
		Date:       row.Date,
		Status:     row.Status,
		Party:      party,
	}
	if party == enums.SigningPartyAppointer {
		view.SignedAt = row.AppointerSignedAt
	} else {
		view.SignedAt = row.AppointeeSignedAt
	}
	return view
}

// PublicSign stores a token holder's signature. The token is consumed with a
// conditional update so a replay or a racing request cannot sign twice.
func (s *service) PublicSign(ctx context.Context, input PublicSignInput) (*PublicView, error) {
	token := strings.TrimSpace(input.Token)
	signature := strings.TrimSpace(input.Signature)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
	}
	if !strings.HasPrefix(signature, "data:") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature must be an image data URL")
	}

	var view *PublicView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		row, party, err := s.resolveForSigning(tx, input.AppointmentID, token)
		if err != nil {
			return err
		}

		ok, err := s.repo.ConsumeTokenTx(tx, row.ID, party, token, signature, s.now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "appointment has already been signed")
		}

		row, err = s.repo.FindByIDTx(tx, row.ID)
		if err != nil {
			return err
		}
		if err := reconcile(row, false); err != nil {
			return err
		}
		if err := s.repo.SetStatusTx(tx, row.ID, row.Status); err != nil {
			return err
		}
		view = publicView(row, party)
		return nil
	})
	if err != nil {
		return nil, repo.MapError(err, "appointment", "sign")
	}
	s.metrics.SignatureCaptured("appointment")
	return view, nil
}

func (s *service) resolveForSigning(tx *gorm.DB, id *uint, token string) (*models.Appointment, enums.SigningParty, error) {
	if id == nil {
		var row models.Appointment
		err := tx.Where("appointer_token = ? OR appointee_token = ?", token, token).First(&row).Error
		if db.IsNotFound(err) {
			return nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
		}
		if err != nil {
			return nil, "", err
		}
		party := enums.SigningPartyAppointee
		if security.TokensEqual(row.AppointerToken, token) {
			party = enums.SigningPartyAppointer
		}
		return checkUnsigned(&row, party)
	}

	row, err := s.repo.FindByIDTx(tx, *id)
	if err != nil {
		return nil, "", err
	}
	switch {
	case security.TokensEqual(row.AppointerToken, token):
		return checkUnsigned(row, enums.SigningPartyAppointer)
	case security.TokensEqual(row.AppointeeToken, token):
		return checkUnsigned(row, enums.SigningPartyAppointee)
	case row.AppointerSignature != nil && row.AppointeeSignature != nil:
		return nil, "", pkgerrors.New(pkgerrors.CodeStateConflict, "appointment has already been signed")
	default:
		return nil, "", pkgerrors.New(pkgerrors.CodeForbidden, "invalid signing token")
	}
}

func checkUnsigned(row *models.Appointment, party enums.SigningParty) (*models.Appointment, enums.SigningParty, error) {
	if hasSigned(row, party) {
		return nil, "", pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("the %s has already signed", party))
	}
	return row, party, nil
}
