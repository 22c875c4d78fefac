package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/api/validators"
	"github.com/delanoso/safetyhub/internal/printing"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// PDFGenerate renders a print view to PDF. The caller's cookies are handed to
// the browser so the print page sees the same session.
func PDFGenerate(svc printing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		var body printing.PDFRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doc, err := svc.PDF(r.Context(), actor, body, r.Cookies())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteFile(w, "application/pdf", doc.FileName, doc.Body)
	}
}

// PrintView serves the HTML page the PDF renderer prints.
func PrintView(views *printing.Views, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		docType := printing.DocType(chi.URLParam(r, "type"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := views.Render(r.Context(), actor, docType, id, w); err != nil {
			w.Header().Del("Content-Type")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
	}
}
