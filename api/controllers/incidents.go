package controllers

import (
	"net/http"
	"strings"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/api/validators"
	"github.com/delanoso/safetyhub/internal/incidents"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// IncidentList supports the status and severity query filters.
func IncidentList(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		q := r.URL.Query()
		filter := incidents.Filter{
			Status:   enums.IncidentStatus(strings.TrimSpace(q.Get("status"))),
			Severity: enums.IncidentSeverity(strings.TrimSpace(q.Get("severity"))),
		}
		rows, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func IncidentGet(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
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

func IncidentCreate(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		var body incidents.CreateIncidentInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), actor, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCreated(w, row)
	}
}

func IncidentUpdate(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		var body incidents.UpdateIncidentInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Update(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func IncidentDelete(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
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

// IncidentAddImages stores every "files" part (or a single "file").
func IncidentAddImages(svc incidents.Service, maxBytes int64, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		files, err := multipartImages(w, r, maxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.AddImages(r.Context(), actor, id, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCreated(w, rows)
	}
}

func IncidentDeleteImage(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		imageID, ok := routeID(w, r, logg, "imageId")
		if !ok {
			return
		}
		if err := svc.DeleteImage(r.Context(), actor, id, imageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func IncidentAddTeamMember(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		var body incidents.TeamMemberInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.AddTeamMember(r.Context(), actor, id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeCreated(w, row)
	}
}

func IncidentDeleteTeamMember(svc incidents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, ok := actorAndID(w, r, logg, "id")
		if !ok {
			return
		}
		memberID, ok := routeID(w, r, logg, "memberId")
		if !ok {
			return
		}
		if err := svc.DeleteTeamMember(r.Context(), actor, id, memberID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
