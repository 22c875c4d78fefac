package controllers

import (
	"net/http"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/api/validators"
	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
)

type uploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// Upload stores one file under the actor's company and returns its public URL.
func Upload(svc media.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		if err := validators.ParseMultipart(w, r, maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		folder, err := enums.ParseUploadFolder(validators.FormValue(r, "folder"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, err.Error()).
				WithDetails(map[string]any{"allowed": enums.Strings(enums.ValidUploadFolders)}))
			return
		}
		file, err := validators.RequireFormFile(r, "file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		stored, err := svc.Store(r.Context(), actor.CompanyID, folder, file, media.AnyFile())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, uploadResponse{URL: stored.URL, FileName: stored.FileName})
	}
}
