package middleware

import (
	"net/http"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/pkg/auth"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// RequireUser rejects anonymous requests with 401.
func RequireUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return requireActor(logg, nil)
}

// RequireAdminOrSuper lets admins and super users through; plain users get 403.
func RequireAdminOrSuper(logg *logger.Logger) func(http.Handler) http.Handler {
	return requireActor(logg, func(a auth.Actor) bool { return a.CanManage() })
}

// RequireSuper restricts a route to super users.
func RequireSuper(logg *logger.Logger) func(http.Handler) http.Handler {
	return requireActor(logg, func(a auth.Actor) bool { return a.IsSuper() })
}

func requireActor(logg *logger.Logger, allowed func(auth.Actor) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if allowed != nil && !allowed(actor) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
