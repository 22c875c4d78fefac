package printing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/delanoso/safetyhub/pkg/auth"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
	"github.com/delanoso/safetyhub/pkg/pdf"
)

// Renderer prints an internal path to PDF; *pdf.Renderer satisfies it.
type Renderer interface {
	Render(ctx context.Context, path string, cookies []*http.Cookie) ([]byte, error)
}

type recordChecker interface {
	Exists(ctx context.Context, actor auth.Actor, docType DocType, id uint) error
}

type PDFRequest struct {
	Type DocType `json:"type" validate:"required"`
	ID   uint    `json:"id" validate:"required"`
}

type Document struct {
	FileName string
	Body     []byte
}

// Service turns a print view into a PDF by driving a headless browser at it.
type Service interface {
	PDF(ctx context.Context, actor auth.Actor, req PDFRequest, cookies []*http.Cookie) (*Document, error)
}

type service struct {
	records  recordChecker
	renderer Renderer
	metrics  *metrics.Business
	logg     *logger.Logger
}

func NewService(records recordChecker, renderer Renderer, m *metrics.Business, logg *logger.Logger) (Service, error) {
	if records == nil {
		return nil, fmt.Errorf("print views required")
	}
	return &service{records: records, renderer: renderer, metrics: m, logg: logg}, nil
}

func (s *service) PDF(ctx context.Context, actor auth.Actor, req PDFRequest, cookies []*http.Cookie) (*Document, error) {
	if err := s.records.Exists(ctx, actor, req.Type, req.ID); err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, notConfigured()
	}

	body, err := s.renderer.Render(ctx, PrintPath(req.Type, req.ID), cookies)
	s.metrics.PDFRendered(string(req.Type), err)
	if err != nil {
		if errors.Is(err, pdf.ErrNotConfigured) {
			return nil, notConfigured()
		}
		if s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "doc_type", string(req.Type)), "pdf render failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "render pdf")
	}
	return &Document{FileName: fmt.Sprintf("%s-%d.pdf", req.Type, req.ID), Body: body}, nil
}

// PrintPath is the gateway-protected page the browser prints.
func PrintPath(t DocType, id uint) string {
	return fmt.Sprintf("/print/%s/%d", t, id)
}

func notConfigured() error {
	return pkgerrors.NotConfigured("PDF rendering", "set SAFETYHUB_PDF_BROWSER_PATH to a Chrome or Chromium executable")
}
