package controllers

import (
	"net/http"
	"time"

	"github.com/delanoso/safetyhub/api/middleware"
	"github.com/delanoso/safetyhub/api/responses"
	"github.com/delanoso/safetyhub/api/validators"
	"github.com/delanoso/safetyhub/internal/auth"
	"github.com/delanoso/safetyhub/pkg/logger"
)

// CookieOptions controls the attributes of the session cookies.
type CookieOptions struct {
	Secure bool
}

func (o CookieOptions) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
		c.Expires = time.Now().Add(maxAge)
	} else {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	}
	return c
}

// AuthLogin checks the credentials and sets the session and role cookies.
func AuthLogin(svc auth.Service, opts CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ttl := svc.SessionTTL()
		http.SetCookie(w, opts.cookie(middleware.SessionCookie, result.Token, ttl))
		http.SetCookie(w, opts.cookie(middleware.RoleCookie, string(result.User.Role), ttl))
		responses.WriteSuccess(w, result.User)
	}
}

// AuthLogout revokes the session, if any, and always expires both cookies.
func AuthLogout(svc auth.Service, opts CookieOptions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
			if err := svc.Logout(r.Context(), cookie.Value); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		http.SetCookie(w, opts.cookie(middleware.SessionCookie, "", 0))
		http.SetCookie(w, opts.cookie(middleware.RoleCookie, "", 0))
		responses.WriteSuccess(w, map[string]bool{"ok": true})
	}
}

// AuthMe returns the caller with their company.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r, logg)
		if !ok {
			return
		}
		user, err := svc.Me(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}
