package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delanoso/safetyhub/api/middleware"
	"github.com/delanoso/safetyhub/internal/auth"
	pkgauth "github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

type stubAuth struct {
	result  *auth.LoginResult
	err     error
	revoked []string
}

func (s *stubAuth) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	return s.result, s.err
}

func (s *stubAuth) Logout(ctx context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubAuth) ResolveActor(ctx context.Context, token string) (*pkgauth.Actor, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or invalid")
}

func (s *stubAuth) Me(ctx context.Context, actor pkgauth.Actor) (*models.User, error) {
	return &models.User{ID: actor.UserID, Email: actor.Email, Role: actor.Role}, nil
}

func (s *stubAuth) SessionTTL() time.Duration { return 2 * time.Hour }

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthLoginSetsSessionAndRoleCookies(t *testing.T) {
	svc := &stubAuth{result: &auth.LoginResult{
		Token: "signed-token",
		User:  &models.User{ID: 4, Email: "sam@acme.test", Role: enums.RoleAdmin},
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"sam@acme.test","password":"pw"}`))
	rec := httptest.NewRecorder()

	AuthLogin(svc, CookieOptions{Secure: true}, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	session := cookieByName(rec.Result().Cookies(), middleware.SessionCookie)
	require.NotNil(t, session)
	assert.Equal(t, "signed-token", session.Value)
	assert.True(t, session.HttpOnly)
	assert.True(t, session.Secure)
	assert.Equal(t, http.SameSiteStrictMode, session.SameSite)
	assert.Equal(t, int((2 * time.Hour).Seconds()), session.MaxAge)

	role := cookieByName(rec.Result().Cookies(), middleware.RoleCookie)
	require.NotNil(t, role)
	assert.Equal(t, "admin", role.Value)
	assert.Contains(t, rec.Body.String(), `"email":"sam@acme.test"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc := &stubAuth{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"sam@acme.test","password":"nope"}`))
	rec := httptest.NewRecorder()

	AuthLogin(svc, CookieOptions{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthLoginValidatesBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	rec := httptest.NewRecorder()

	AuthLogin(&stubAuth{}, CookieOptions{}, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthLogoutRevokesAndExpiresCookies(t *testing.T) {
	svc := &stubAuth{}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "signed-token"})
	rec := httptest.NewRecorder()

	AuthLogout(svc, CookieOptions{}, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"signed-token"}, svc.revoked)
	for _, name := range []string{middleware.SessionCookie, middleware.RoleCookie} {
		c := cookieByName(rec.Result().Cookies(), name)
		require.NotNil(t, c, name)
		assert.Less(t, c.MaxAge, 0, name)
	}
}

func TestAuthMeRequiresActor(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthMe(&stubAuth{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	id := uint(7)
	ctx := middleware.WithActor(context.Background(), pkgauth.Actor{UserID: 3, Email: "kim@acme.test", Role: enums.RoleUser, CompanyID: &id})
	rec = httptest.NewRecorder()
	AuthMe(&stubAuth{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil).WithContext(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"kim@acme.test"`)
}

type stubPing struct{ err error }

func (s stubPing) Ping(context.Context) error { return s.err }

func TestHealthReadyReportsRequiredFailure(t *testing.T) {
	deps := []Dependency{
		{Name: "database", Pinger: stubPing{}},
		{Name: "redis", Pinger: stubPing{err: errors.New("connection refused")}},
	}
	rec := httptest.NewRecorder()
	HealthReady("dev", deps, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"error"`)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
}

func TestHealthReadyToleratesOptionalFailure(t *testing.T) {
	deps := []Dependency{
		{Name: "database", Pinger: stubPing{}},
		{Name: "storage", Pinger: stubPing{err: errors.New("bucket missing")}, Optional: true},
		{Name: "browser"},
	}
	rec := httptest.NewRecorder()
	HealthReady("dev", deps, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"browser":"not configured"`)
	assert.Equal(t, "dev", rec.Header().Get("X-SafetyHub-Env"))
}
