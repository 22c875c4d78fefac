package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"signature": signatureURL,
	"stamp": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04 MST")
	},
	"inc": func(i int) int { return i + 1 },
}

// signatureURL lets captured data-URL images through the template URL filter.
// Anything else renders nothing.
func signatureURL(sig *string) template.URL {
	if sig == nil || !strings.HasPrefix(*sig, "data:image/") {
		return ""
	}
	return template.URL(*sig)
}

type page struct {
	Title   string
	Company string
	LogoURL string
	Printed string
	Doc     any
}

// Views renders the server-side HTML the PDF bridge prints.
type Views struct {
	repo      repo.Base
	templates map[DocType]*template.Template
	now       func() time.Time
}

func NewViews(db *gorm.DB, now func() time.Time) (*Views, error) {
	if db == nil {
		return nil, fmt.Errorf("database required")
	}
	if now == nil {
		now = time.Now
	}
	v := &Views{repo: repo.NewBase(db), templates: make(map[DocType]*template.Template, len(ValidDocTypes)), now: now}
	for _, t := range ValidDocTypes {
		tmpl, err := template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl", "templates/"+string(t)+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", t, err)
		}
		v.templates[t] = tmpl
	}
	return v, nil
}

// Render writes the print view of one record visible to the actor.
func (v *Views) Render(ctx context.Context, actor auth.Actor, docType DocType, id uint, w io.Writer) error {
	if !docType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeNotFound, "unknown document type")
	}
	doc, companyID, err := v.load(ctx, actor, docType, id)
	if err != nil {
		return repo.MapError(err, string(docType), "load")
	}

	p := page{
		Title:   docType.title(),
		Printed: types.NewDate(v.now().UTC()).String(),
		Doc:     doc,
	}
	if companyID != nil {
		var company models.Company
		if err := v.repo.DB(ctx).First(&company, *companyID).Error; err == nil {
			p.Company = company.Name
			if company.LogoURL != nil {
				p.LogoURL = *company.LogoURL
			}
		}
	}

	var buf bytes.Buffer
	if err := v.templates[docType].ExecuteTemplate(&buf, "layout", p); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render print view")
	}
	_, err = buf.WriteTo(w)
	return err
}

// Exists reports whether the record is visible, without rendering it.
func (v *Views) Exists(ctx context.Context, actor auth.Actor, docType DocType, id uint) error {
	if !docType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid document type").
			WithDetails(map[string]any{"allowed": allowedTypes()})
	}
	_, _, err := v.load(ctx, actor, docType, id)
	return repo.MapError(err, string(docType), "load")
}

func (v *Views) load(ctx context.Context, actor auth.Actor, docType DocType, id uint) (any, *uint, error) {
	q := v.repo.DB(ctx).Scopes(repo.Scope(actor))
	switch docType {
	case DocAppointment:
		var m models.Appointment
		err := q.First(&m, id).Error
		return &m, m.CompanyID, err
	case DocIncident:
		var m models.Incident
		err := q.Preload("Images").Preload("Team").First(&m, id).Error
		return &m, m.CompanyID, err
	case DocInspection:
		var m models.Inspection
		err := q.First(&m, id).Error
		if err == nil {
			m.Status = m.Status.Effective(m.Date, types.NewDate(v.now().UTC()))
		}
		return &m, m.CompanyID, err
	case DocRiskAssessment:
		var m models.RiskAssessment
		err := q.First(&m, id).Error
		return &m, m.CompanyID, err
	case DocPPEIssue:
		var m models.PPEIssue
		err := q.Preload("Person").Preload("ItemType").First(&m, id).Error
		return &m, m.CompanyID, err
	case DocNCR:
		var m models.NCRReport
		err := q.Preload("Items").Preload("Items.Images").First(&m, id).Error
		return &m, m.CompanyID, err
	}
	return nil, nil, gorm.ErrRecordNotFound
}
