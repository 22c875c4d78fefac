package controllers

import (
	"net/http"

	"github.com/delanoso/safetyhub/api/middleware"
	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/api/validators"
	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/pkg/auth"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// actorFrom returns the session caller or answers 401 itself.
func actorFrom(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (auth.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return auth.Actor{}, false
	}
	return actor, true
}

// actorAndID combines actorFrom with a numeric route parameter.
func actorAndID(w http.ResponseWriter, r *http.Request, logg *logger.Logger, param string) (auth.Actor, uint, bool) {
	actor, ok := actorFrom(w, r, logg)
	if !ok {
		return auth.Actor{}, 0, false
	}
	id, err := validators.ParseIDParam(r, param)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return auth.Actor{}, 0, false
	}
	return actor, id, true
}

// routeID parses a second route parameter once the first was accepted.
func routeID(w http.ResponseWriter, r *http.Request, logg *logger.Logger, param string) (uint, bool) {
	id, err := validators.ParseIDParam(r, param)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return 0, false
	}
	return id, true
}

func writeCreated(w http.ResponseWriter, data any) {
	responses.WriteSuccessStatus(w, http.StatusCreated, data)
}

// maxFilesPerRequest bounds the body of multi-file uploads; each file is still
// checked against the per-file limit when stored.
const maxFilesPerRequest = 10

// multipartImages reads the "files" parts of an image upload, falling back to
// a single "file" part.
func multipartImages(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]media.File, error) {
	if err := validators.ParseMultipart(w, r, maxBytes*maxFilesPerRequest); err != nil {
		return nil, err
	}
	if file, err := validators.FormFile(r, "file"); err != nil {
		return nil, err
	} else if file != nil && (r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0) {
		return []media.File{*file}, nil
	}
	files, err := validators.FormFiles(r, "files")
	if err != nil {
		return nil, err
	}
	if len(files) > maxFilesPerRequest {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many files in one upload").WithDetails(map[string]int{"max": maxFilesPerRequest})
	}
	return files, nil
}
