package controllers

import (
	"net/http"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/internal/dashboard"
	"github.com/delanoso/safetyhub/internal/notifications"
	"github.com/delanoso/safetyhub/pkg/logger"
)

func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.Summary(r.Context(), actor))
	}
}

func NotificationList(svc notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context(), actor))
	}
}
