package controllers

import (
	"net/http"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/api/validators"
	"github.com/delanoso/safetyhub/internal/chemicals"
	"github.com/delanoso/safetyhub/pkg/export"
	"github.com/delanoso/safetyhub/pkg/logger"
)

func ChemicalList(svc chemicals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		rows, err := svc.List(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func ChemicalGet(svc chemicals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		row, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// ChemicalCreate accepts JSON or multipart with an optional SDS under "file".
func ChemicalCreate(svc chemicals.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		var body chemicals.CreateChemicalInput
		sds, err := validators.DecodeJSONOrForm(w, r, &body, "file", maxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), actor, body, sds)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCreated(w, row)
	}
}

func ChemicalUpdate(svc chemicals.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		var body chemicals.UpdateChemicalInput
		sds, err := validators.DecodeJSONOrForm(w, r, &body, "file", maxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Update(r.Context(), actor, id, body, sds)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func ChemicalDelete(svc chemicals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func ChemicalExport(svc chemicals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		body, err := svc.Export(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteFile(w, export.ContentType, "chemical-register.xlsx", body)
	}
}
