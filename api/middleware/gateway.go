package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/delanoso/safetyhub/pkg/enums"
)

// Gateway guards the server-rendered pages. Anonymous visitors are sent to
// the frontend login with a next parameter; plain users are turned away from
// /admin.
func Gateway(frontendURL string) func(http.Handler) http.Handler {
	base := strings.TrimRight(frontendURL, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				target := base + "/login?next=" + url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			if isAdminPath(r.URL.Path) && actor.Role == enums.RoleUser {
				http.Redirect(w, r, base+"/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isAdminPath(p string) bool {
	return p == "/admin" || strings.HasPrefix(p, "/admin/")
}
