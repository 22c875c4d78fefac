package main

import (
	"context"
	"fmt"
	"time"

	"github.com/delanoso/safetyhub/api/routes"
	"github.com/delanoso/safetyhub/internal/appointments"
	"github.com/delanoso/safetyhub/internal/auth"
	"github.com/delanoso/safetyhub/internal/certificates"
	"github.com/delanoso/safetyhub/internal/chemicals"
	"github.com/delanoso/safetyhub/internal/companies"
	"github.com/delanoso/safetyhub/internal/contractors"
	"github.com/delanoso/safetyhub/internal/dashboard"
	"github.com/delanoso/safetyhub/internal/elections"
	"github.com/delanoso/safetyhub/internal/incidents"
	"github.com/delanoso/safetyhub/internal/inspections"
	"github.com/delanoso/safetyhub/internal/legal"
	"github.com/delanoso/safetyhub/internal/library"
	"github.com/delanoso/safetyhub/internal/maintenance"
	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/medicals"
	"github.com/delanoso/safetyhub/internal/ncr"
	"github.com/delanoso/safetyhub/internal/notifications"
	"github.com/delanoso/safetyhub/internal/ppe"
	"github.com/delanoso/safetyhub/internal/printing"
	"github.com/delanoso/safetyhub/internal/risk"
	"github.com/delanoso/safetyhub/internal/users"
	"github.com/delanoso/safetyhub/pkg/auth/session"
	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/email"
	"github.com/delanoso/safetyhub/pkg/links"
	"github.com/delanoso/safetyhub/pkg/llm"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
	"github.com/delanoso/safetyhub/pkg/pdf"
	"github.com/delanoso/safetyhub/pkg/storage/gcs"
)

type deps struct {
	cfg      *config.Config
	logg     *logger.Logger
	db       *db.Client
	sessions *session.Manager
	gcs      *gcs.Client
	business *metrics.Business
}

// buildServices constructs every domain service. Optional integrations that
// are not configured are passed as nil interfaces so the services answer 503.
func buildServices(ctx context.Context, d deps) (routes.Services, error) {
	var out routes.Services
	conn := d.db.DB()
	now := time.Now

	var store media.ObjectStore
	if d.gcs != nil {
		store = d.gcs
	}
	uploads := media.NewService(store, d.cfg.Uploads.MaxUploadBytes(), d.business, d.logg)
	out.Media = uploads

	mailer := email.NewClient(d.cfg.Email)
	if !mailer.Configured() {
		d.logg.Warn(ctx, "email not configured; signing and ballot links are returned but not sent")
	}
	linkBase := d.cfg.App.FrontendURL
	if linkBase == "" {
		linkBase = d.cfg.App.PublicURL
	}
	builder := links.NewBuilder(linkBase)

	var drafter risk.Drafter
	if client := llm.NewClient(d.cfg.OpenAI); client != nil {
		drafter = client
	}
	var renderer printing.Renderer
	if r := pdf.NewRenderer(d.cfg.PDF, d.cfg.App.PublicURL); r != nil {
		renderer = r
	}

	userRepo := users.NewRepository(conn)
	var err error
	if out.Auth, err = auth.NewService(auth.ServiceParams{
		Users:       userRepo,
		Sessions:    d.sessions,
		PasswordCfg: d.cfg.Password,
		Logger:      d.logg,
		Now:         now,
	}); err != nil {
		return out, fmt.Errorf("auth service: %w", err)
	}
	if out.Companies, err = companies.NewService(companies.NewRepository(conn), d.db, uploads); err != nil {
		return out, fmt.Errorf("companies service: %w", err)
	}
	if out.Users, err = users.NewService(userRepo, d.db, d.cfg.Password); err != nil {
		return out, fmt.Errorf("users service: %w", err)
	}
	if out.Incidents, err = incidents.NewService(incidents.NewRepository(conn), d.db, uploads); err != nil {
		return out, fmt.Errorf("incidents service: %w", err)
	}
	if out.Inspections, err = inspections.NewService(inspections.NewRepository(conn), now); err != nil {
		return out, fmt.Errorf("inspections service: %w", err)
	}
	if out.Appointments, err = appointments.NewService(appointments.ServiceParams{
		Repo:    appointments.NewRepository(conn),
		Tx:      d.db,
		Mailer:  mailer,
		Links:   builder,
		Metrics: d.business,
		Logger:  d.logg,
		Now:     now,
	}); err != nil {
		return out, fmt.Errorf("appointments service: %w", err)
	}
	if out.Medicals, err = medicals.NewService(medicals.NewRepository(conn), uploads, now); err != nil {
		return out, fmt.Errorf("medicals service: %w", err)
	}
	if out.Certificates, err = certificates.NewService(certificates.NewRepository(conn), uploads, now); err != nil {
		return out, fmt.Errorf("certificates service: %w", err)
	}
	if out.PPE, err = ppe.NewService(ppe.ServiceParams{
		Repo:    ppe.NewRepository(conn),
		Tx:      d.db,
		Mailer:  mailer,
		Links:   builder,
		Metrics: d.business,
		Logger:  d.logg,
		Now:     now,
	}); err != nil {
		return out, fmt.Errorf("ppe service: %w", err)
	}
	if out.Risk, err = risk.NewService(risk.NewRepository(conn), drafter, d.business, now); err != nil {
		return out, fmt.Errorf("risk service: %w", err)
	}
	if out.Contractors, err = contractors.NewService(contractors.ServiceParams{
		Repo:     contractors.NewRepository(conn),
		Tx:       d.db,
		Uploads:  uploads,
		Links:    builder,
		MaxBytes: d.cfg.Uploads.ContractorMaxBytes(),
	}); err != nil {
		return out, fmt.Errorf("contractors service: %w", err)
	}
	if out.Chemicals, err = chemicals.NewService(chemicals.NewRepository(conn), uploads); err != nil {
		return out, fmt.Errorf("chemicals service: %w", err)
	}
	if out.Maintenance, err = maintenance.NewService(maintenance.NewRepository(conn), d.db); err != nil {
		return out, fmt.Errorf("maintenance service: %w", err)
	}
	if out.Elections, err = elections.NewService(elections.ServiceParams{
		Repo:    elections.NewRepository(conn),
		Tx:      d.db,
		Mailer:  mailer,
		Links:   builder,
		Metrics: d.business,
		Logger:  d.logg,
		Now:     now,
	}); err != nil {
		return out, fmt.Errorf("elections service: %w", err)
	}
	if out.NCR, err = ncr.NewService(ncr.NewRepository(conn), d.db, uploads); err != nil {
		return out, fmt.Errorf("ncr service: %w", err)
	}
	if out.Legal, err = legal.NewService(legal.NewRepository(conn), uploads); err != nil {
		return out, fmt.Errorf("legal service: %w", err)
	}
	if out.Library, err = library.NewService(library.NewRepository(conn), d.db, uploads); err != nil {
		return out, fmt.Errorf("library service: %w", err)
	}
	if out.Dashboard, err = dashboard.NewService(dashboard.NewRepository(conn), d.logg, now); err != nil {
		return out, fmt.Errorf("dashboard service: %w", err)
	}
	if out.Notifications, err = notifications.NewService(notifications.NewRepository(conn), d.logg, now); err != nil {
		return out, fmt.Errorf("notifications service: %w", err)
	}
	if out.PrintViews, err = printing.NewViews(conn, now); err != nil {
		return out, fmt.Errorf("print views: %w", err)
	}
	if out.Printing, err = printing.NewService(out.PrintViews, renderer, d.business, d.logg); err != nil {
		return out, fmt.Errorf("printing service: %w", err)
	}
	return out, nil
}
