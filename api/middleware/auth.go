package middleware

import (
	"context"
	"net/http"

	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/pkg/auth"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// ActorResolver maps a session cookie value to its caller.
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (*auth.Actor, error)
}

// Session resolves the session cookie when present and seeds the context with
// the caller. Requests without a valid session pass through anonymously; the
// Require* guards and Gateway decide what that means for a route.
func Session(resolver ActorResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" || resolver == nil {
				next.ServeHTTP(w, r)
				return
			}

			actor, err := resolver.ResolveActor(r.Context(), cookie.Value)
			if err != nil {
				if pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
					next.ServeHTTP(w, r)
					return
				}
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithActor(r.Context(), *actor)
			if logg != nil {
				fields := map[string]any{
					"user_id":    actor.UserID,
					"actor_role": string(actor.Role),
				}
				if actor.CompanyID != nil {
					fields["company_id"] = *actor.CompanyID
				}
				ctx = logg.WithFields(ctx, fields)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
