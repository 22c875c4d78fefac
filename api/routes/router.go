package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/delanoso/safetyhub/api/controllers"
	"github.com/delanoso/safetyhub/api/middleware"
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
	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth          auth.Service
	Companies     companies.Service
	Users         users.Service
	Incidents     incidents.Service
	Inspections   inspections.Service
	Appointments  appointments.Service
	Medicals      medicals.Service
	Certificates  certificates.Service
	PPE           ppe.Service
	Risk          risk.Service
	Contractors   contractors.Service
	Chemicals     chemicals.Service
	Maintenance   maintenance.Service
	Elections     elections.Service
	NCR           ncr.Service
	Legal         legal.Service
	Library       library.Service
	Media         media.Service
	Dashboard     dashboard.Service
	Notifications notifications.Service
	Printing      printing.Service
	PrintViews    *printing.Views
}

// Infra carries the shared clients the router needs outside of services.
type Infra struct {
	Health      []controllers.Dependency
	RateLimiter middleware.RateLimiterStore
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, infra Infra, svc Services) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(infra.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Session(svc.Auth, logg),
	)

	maxBytes := cfg.Uploads.MaxUploadBytes()
	cookies := controllers.CookieOptions{Secure: cfg.App.SecureCookie}
	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	publicPolicy := middleware.NewRateLimitPolicy(
		"public",
		cfg.AuthRateLimit.PublicWindow,
		cfg.AuthRateLimit.PublicIPLimit,
		0,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, infra.Health, logg))
	})
	if infra.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(infra.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.RateLimit(loginPolicy, infra.RateLimiter, logg)).Post("/login", controllers.AuthLogin(svc.Auth, cookies, logg))
		r.Post("/logout", controllers.AuthLogout(svc.Auth, cookies, logg))
		r.With(middleware.RequireUser(logg)).Get("/me", controllers.AuthMe(svc.Auth, logg))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Use(middleware.RateLimit(publicPolicy, infra.RateLimiter, logg))
		r.Get("/appointments/sign/{token}", controllers.PublicAppointmentView(svc.Appointments, logg))
		r.Post("/appointments/sign", controllers.PublicAppointmentSign(svc.Appointments, logg))
		r.Get("/ppe/sign/{token}", controllers.PublicPPEIssueView(svc.PPE, logg))
		r.Post("/ppe/sign", controllers.PublicPPESign(svc.PPE, logg))
		r.Get("/contractors/{token}", controllers.PublicContractorView(svc.Contractors, logg))
		r.Post("/contractors/{token}/documents", controllers.PublicContractorUpload(svc.Contractors, cfg.Uploads.ContractorMaxBytes(), logg))
		r.Get("/vote/{token}", controllers.PublicBallot(svc.Elections, logg))
		r.Post("/vote", controllers.PublicVote(svc.Elections, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireUser(logg))

		r.Route("/companies", func(r chi.Router) {
			r.With(middleware.RequireAdminOrSuper(logg)).Get("/current", controllers.CompanyCurrent(svc.Companies, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuper(logg))
				r.Get("/", controllers.CompanyList(svc.Companies, logg))
				r.Post("/", controllers.CompanyCreate(svc.Companies, logg))
				r.Get("/{id}", controllers.CompanyGet(svc.Companies, logg))
				r.Patch("/{id}", controllers.CompanyUpdate(svc.Companies, logg))
				r.Delete("/{id}", controllers.CompanyDelete(svc.Companies, logg))
				r.Post("/{id}/logo", controllers.CompanyLogo(svc.Companies, maxBytes, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAdminOrSuper(logg))
			r.Get("/", controllers.UserList(svc.Users, logg))
			r.Post("/", controllers.UserCreate(svc.Users, logg))
			r.Get("/{id}", controllers.UserGet(svc.Users, logg))
			r.Patch("/{id}", controllers.UserUpdate(svc.Users, logg))
			r.Delete("/{id}", controllers.UserDelete(svc.Users, logg))
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", controllers.IncidentList(svc.Incidents, logg))
			r.Post("/", controllers.IncidentCreate(svc.Incidents, logg))
			r.Get("/{id}", controllers.IncidentGet(svc.Incidents, logg))
			r.Patch("/{id}", controllers.IncidentUpdate(svc.Incidents, logg))
			r.Delete("/{id}", controllers.IncidentDelete(svc.Incidents, logg))
			r.Post("/{id}/images", controllers.IncidentAddImages(svc.Incidents, maxBytes, logg))
			r.Delete("/{id}/images/{imageId}", controllers.IncidentDeleteImage(svc.Incidents, logg))
			r.Post("/{id}/team", controllers.IncidentAddTeamMember(svc.Incidents, logg))
			r.Delete("/{id}/team/{memberId}", controllers.IncidentDeleteTeamMember(svc.Incidents, logg))
		})

		r.Route("/inspections", func(r chi.Router) {
			r.Get("/", controllers.InspectionList(svc.Inspections, logg))
			r.Post("/", controllers.InspectionCreate(svc.Inspections, logg))
			r.Get("/{id}", controllers.InspectionGet(svc.Inspections, logg))
			r.Patch("/{id}", controllers.InspectionUpdate(svc.Inspections, logg))
			r.Delete("/{id}", controllers.InspectionDelete(svc.Inspections, logg))
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", controllers.AppointmentList(svc.Appointments, logg))
			r.Post("/", controllers.AppointmentCreate(svc.Appointments, logg))
			r.Get("/designations", controllers.AppointmentDesignations())
			r.Get("/{id}", controllers.AppointmentGet(svc.Appointments, logg))
			r.Patch("/{id}", controllers.AppointmentUpdate(svc.Appointments, logg))
			r.Delete("/{id}", controllers.AppointmentDelete(svc.Appointments, logg))
			r.Post("/{id}/request-signature", controllers.AppointmentRequestSignature(svc.Appointments, logg))
		})

		r.Route("/medicals", func(r chi.Router) {
			r.Get("/", controllers.MedicalList(svc.Medicals, logg))
			r.Post("/", controllers.MedicalCreate(svc.Medicals, maxBytes, logg))
			r.Get("/{id}", controllers.MedicalGet(svc.Medicals, logg))
			r.Patch("/{id}", controllers.MedicalUpdate(svc.Medicals, maxBytes, logg))
			r.Delete("/{id}", controllers.MedicalDelete(svc.Medicals, logg))
		})

		r.Route("/certificates", func(r chi.Router) {
			r.Get("/", controllers.CertificateList(svc.Certificates, logg))
			r.Post("/", controllers.CertificateCreate(svc.Certificates, maxBytes, logg))
			r.Get("/{id}", controllers.CertificateGet(svc.Certificates, logg))
			r.Patch("/{id}", controllers.CertificateUpdate(svc.Certificates, maxBytes, logg))
			r.Delete("/{id}", controllers.CertificateDelete(svc.Certificates, logg))
		})

		r.Route("/ppe", func(r chi.Router) {
			r.Route("/types", func(r chi.Router) {
				r.Get("/", controllers.PPETypeList(svc.PPE, logg))
				r.Post("/", controllers.PPETypeCreate(svc.PPE, logg))
				r.Patch("/{id}", controllers.PPETypeUpdate(svc.PPE, logg))
				r.Delete("/{id}", controllers.PPETypeDelete(svc.PPE, logg))
			})
			r.Route("/stock", func(r chi.Router) {
				r.Get("/", controllers.PPEStockList(svc.PPE, logg))
				r.Post("/", controllers.PPEStockAdd(svc.PPE, logg))
				r.Patch("/{id}", controllers.PPEStockUpdate(svc.PPE, logg))
				r.Delete("/{id}", controllers.PPEStockDelete(svc.PPE, logg))
			})
			r.Route("/persons", func(r chi.Router) {
				r.Get("/", controllers.PPEPersonList(svc.PPE, logg))
				r.Post("/", controllers.PPEPersonCreate(svc.PPE, logg))
				r.Get("/{id}", controllers.PPEPersonGet(svc.PPE, logg))
				r.Patch("/{id}", controllers.PPEPersonUpdate(svc.PPE, logg))
				r.Delete("/{id}", controllers.PPEPersonDelete(svc.PPE, logg))
			})
			r.Route("/issues", func(r chi.Router) {
				r.Get("/", controllers.PPEIssueList(svc.PPE, logg))
				r.Post("/", controllers.PPEIssueCreate(svc.PPE, logg))
				r.Get("/export", controllers.PPEIssueExport(svc.PPE, logg))
				r.Get("/{id}", controllers.PPEIssueGet(svc.PPE, logg))
				r.Delete("/{id}", controllers.PPEIssueDelete(svc.PPE, logg))
				r.Post("/{id}/sign", controllers.PPEIssueSign(svc.PPE, logg))
			})
		})

		r.Route("/risk-assessments", func(r chi.Router) {
			r.Get("/", controllers.RiskList(svc.Risk, logg))
			r.Post("/", controllers.RiskCreate(svc.Risk, logg))
			r.Post("/generate", controllers.RiskGenerate(svc.Risk, logg))
			r.Get("/{id}", controllers.RiskGet(svc.Risk, logg))
			r.Patch("/{id}", controllers.RiskUpdate(svc.Risk, logg))
			r.Delete("/{id}", controllers.RiskDelete(svc.Risk, logg))
			r.Post("/{id}/sign", controllers.RiskSign(svc.Risk, logg))
		})

		r.Route("/contractors", func(r chi.Router) {
			r.Get("/", controllers.ContractorList(svc.Contractors, logg))
			r.Post("/", controllers.ContractorCreate(svc.Contractors, logg))
			r.Get("/{id}", controllers.ContractorGet(svc.Contractors, logg))
			r.Patch("/{id}", controllers.ContractorUpdate(svc.Contractors, logg))
			r.Delete("/{id}", controllers.ContractorDelete(svc.Contractors, logg))
			r.Post("/{id}/token", controllers.ContractorRotateToken(svc.Contractors, logg))
			r.With(middleware.RequireAdminOrSuper(logg)).Delete("/{id}/documents/{docId}", controllers.ContractorDeleteDocument(svc.Contractors, logg))
		})

		r.Route("/chemicals", func(r chi.Router) {
			r.Get("/", controllers.ChemicalList(svc.Chemicals, logg))
			r.Post("/", controllers.ChemicalCreate(svc.Chemicals, maxBytes, logg))
			r.Get("/export", controllers.ChemicalExport(svc.Chemicals, logg))
			r.Get("/{id}", controllers.ChemicalGet(svc.Chemicals, logg))
			r.Patch("/{id}", controllers.ChemicalUpdate(svc.Chemicals, maxBytes, logg))
			r.Delete("/{id}", controllers.ChemicalDelete(svc.Chemicals, logg))
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", controllers.MaintenanceScheduleList(svc.Maintenance, logg))
				r.Post("/", controllers.MaintenanceScheduleCreate(svc.Maintenance, logg))
				r.Get("/{id}", controllers.MaintenanceScheduleGet(svc.Maintenance, logg))
				r.Patch("/{id}", controllers.MaintenanceScheduleUpdate(svc.Maintenance, logg))
				r.Delete("/{id}", controllers.MaintenanceScheduleDelete(svc.Maintenance, logg))
				r.Get("/{id}/items", controllers.MaintenanceItemList(svc.Maintenance, logg))
				r.Post("/{id}/items", controllers.MaintenanceItemCreate(svc.Maintenance, logg))
			})
			r.Route("/items/{id}", func(r chi.Router) {
				r.Patch("/", controllers.MaintenanceItemUpdate(svc.Maintenance, logg))
				r.Delete("/", controllers.MaintenanceItemDelete(svc.Maintenance, logg))
				r.Get("/services", controllers.MaintenanceServiceList(svc.Maintenance, logg))
				r.Post("/services", controllers.MaintenanceServiceLog(svc.Maintenance, logg))
			})
			r.Delete("/services/{id}", controllers.MaintenanceServiceDelete(svc.Maintenance, logg))
		})

		r.Route("/elections", func(r chi.Router) {
			r.Get("/", controllers.ElectionList(svc.Elections, logg))
			r.Post("/", controllers.ElectionCreate(svc.Elections, logg))
			r.Get("/{id}", controllers.ElectionGet(svc.Elections, logg))
			r.Patch("/{id}", controllers.ElectionUpdate(svc.Elections, logg))
			r.Delete("/{id}", controllers.ElectionDelete(svc.Elections, logg))
			r.Patch("/{id}/status", controllers.ElectionSetStatus(svc.Elections, logg))
			r.Post("/{id}/candidates", controllers.ElectionAddCandidate(svc.Elections, logg))
			r.Delete("/{id}/candidates/{candidateId}", controllers.ElectionDeleteCandidate(svc.Elections, logg))
			r.Post("/{id}/voters", controllers.ElectionAddVoter(svc.Elections, logg))
			r.Delete("/{id}/voters/{voterId}", controllers.ElectionDeleteVoter(svc.Elections, logg))
			r.Get("/{id}/results", controllers.ElectionResults(svc.Elections, logg))
		})

		r.Route("/ncr", func(r chi.Router) {
			r.Get("/", controllers.NCRList(svc.NCR, logg))
			r.Post("/", controllers.NCRCreate(svc.NCR, logg))
			r.Patch("/items/{itemId}", controllers.NCRUpdateItem(svc.NCR, logg))
			r.Delete("/items/{itemId}", controllers.NCRDeleteItem(svc.NCR, logg))
			r.Post("/items/{itemId}/images", controllers.NCRAddImages(svc.NCR, maxBytes, logg))
			r.Delete("/images/{imageId}", controllers.NCRDeleteImage(svc.NCR, logg))
			r.Get("/{id}", controllers.NCRGet(svc.NCR, logg))
			r.Patch("/{id}", controllers.NCRUpdate(svc.NCR, logg))
			r.Delete("/{id}", controllers.NCRDelete(svc.NCR, logg))
			r.Post("/{id}/items", controllers.NCRAddItem(svc.NCR, logg))
		})

		r.Route("/legal-documents", func(r chi.Router) {
			r.Get("/", controllers.LegalList(svc.Legal, logg))
			r.Post("/", controllers.LegalCreate(svc.Legal, maxBytes, logg))
			r.Get("/{id}", controllers.LegalGet(svc.Legal, logg))
			r.Patch("/{id}", controllers.LegalUpdate(svc.Legal, maxBytes, logg))
			r.Delete("/{id}", controllers.LegalDelete(svc.Legal, logg))
		})

		r.Route("/folders", func(r chi.Router) {
			r.Get("/", controllers.FolderList(svc.Library, logg))
			r.Post("/", controllers.FolderCreate(svc.Library, logg))
			r.Patch("/{id}", controllers.FolderRename(svc.Library, logg))
			r.Delete("/{id}", controllers.FolderDelete(svc.Library, logg))
		})
		r.Route("/files", func(r chi.Router) {
			r.Get("/", controllers.FileList(svc.Library, logg))
			r.Post("/", controllers.FileUpload(svc.Library, maxBytes, logg))
			r.Delete("/{id}", controllers.FileDelete(svc.Library, logg))
		})

		r.Post("/upload", controllers.Upload(svc.Media, maxBytes, logg))
		r.Get("/dashboard", controllers.DashboardSummary(svc.Dashboard, logg))
		r.Get("/notifications", controllers.NotificationList(svc.Notifications, logg))
		r.Post("/pdf", controllers.PDFGenerate(svc.Printing, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Gateway(cfg.App.FrontendURL))
		r.Get("/print/{type}/{id}", controllers.PrintView(svc.PrintViews, logg))
	})

	return r
}
