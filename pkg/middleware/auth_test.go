package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendance-system/pkg/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGrantSource struct {
	pagesByRole map[string][]string
}

func (g *fakeGrantSource) GetPageKeysForRole(ctx context.Context, roleName string) ([]string, error) {
	return g.pagesByRole[roleName], nil
}

func setupEcho(t *testing.T) (*echo.Echo, session.Service) {
	t.Helper()
	e := echo.New()
	sessions := session.NewService("middleware-test-secret", time.Hour)
	grants := &fakeGrantSource{pagesByRole: map[string][]string{
		"reviewer": {"dashboard", "students"},
	}}
	mw := NewAuthMiddleware(sessions, grants, zap.NewNop())

	e.Use(mw.WithSession)

	ok := func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
	e.GET("/public", ok)
	e.GET("/secure", ok, mw.RequireAuth)
	e.GET("/admin", ok, mw.RequireAuth, mw.RequireAdmin)
	e.GET("/students", ok, mw.RequireAuth, mw.RequirePage("students"))
	e.GET("/users", ok, mw.RequireAuth, mw.RequirePage("users"))
	return e, sessions
}

func doRequest(e *echo.Echo, cookie *http.Cookie, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, sessions session.Service, claims session.Claims) *http.Cookie {
	t.Helper()
	token, err := sessions.Issue(claims, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func TestPublicRouteIgnoresSession(t *testing.T) {
	e, _ := setupEcho(t)
	rec := doRequest(e, nil, "/public")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSecureRouteRejectsAnonymous(t *testing.T) {
	e, _ := setupEcho(t)
	rec := doRequest(e, nil, "/secure")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestSecureRouteRejectsTamperedCookie(t *testing.T) {
	e, _ := setupEcho(t)
	other := session.NewService("a-different-secret", time.Hour)
	cookie := sessionCookie(t, other, session.Claims{UserID: 1, Role: "admin"})

	rec := doRequest(e, cookie, "/secure")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSecureRouteAcceptsValidSession(t *testing.T) {
	e, sessions := setupEcho(t)
	cookie := sessionCookie(t, sessions, session.Claims{UserID: 1, Role: "reviewer"})

	rec := doRequest(e, cookie, "/secure")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRouteRejectsReviewer(t *testing.T) {
	e, sessions := setupEcho(t)
	cookie := sessionCookie(t, sessions, session.Claims{UserID: 2, Role: "reviewer"})

	rec := doRequest(e, cookie, "/admin")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestAdminRouteAcceptsAdmin(t *testing.T) {
	e, sessions := setupEcho(t)
	cookie := sessionCookie(t, sessions, session.Claims{UserID: 1, Role: "admin"})

	rec := doRequest(e, cookie, "/admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePageGranted(t *testing.T) {
	e, sessions := setupEcho(t)
	cookie := sessionCookie(t, sessions, session.Claims{UserID: 2, Role: "reviewer"})

	rec := doRequest(e, cookie, "/students")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePageDenied(t *testing.T) {
	e, sessions := setupEcho(t)
	cookie := sessionCookie(t, sessions, session.Claims{UserID: 2, Role: "reviewer"})

	rec := doRequest(e, cookie, "/users")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Forbidden", body["error"])
}

// A role with no grant rows at all passes every page gate.
func TestRequirePageEmptyGrantsAllowAll(t *testing.T) {
	e, sessions := setupEcho(t)
	cookie := sessionCookie(t, sessions, session.Claims{UserID: 3, Role: "ungranted"})

	for _, path := range []string{"/students", "/users"} {
		rec := doRequest(e, cookie, path)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestRequirePageAnonymous(t *testing.T) {
	e, _ := setupEcho(t)
	rec := doRequest(e, nil, "/students")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExpiredSessionIsAnonymous(t *testing.T) {
	e, _ := setupEcho(t)

	short := session.NewService("middleware-test-secret", time.Hour)
	token, err := short.Issue(session.Claims{UserID: 1, Role: "admin"}, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	cookie := &http.Cookie{Name: session.CookieName, Value: token}
	rec := doRequest(e, cookie, "/secure")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
