package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

type fakeSessionStore struct {
	sessions map[string]*domain.Principal
}

func (f *fakeSessionStore) Resolve(_ context.Context, token string) (*domain.Principal, error) {
	return f.sessions[token], nil
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	store := &fakeSessionStore{sessions: map[string]*domain.Principal{
		"member-token": {UserID: "u1", Role: "member"},
		"admin-token":  {UserID: "u2", Role: "admin"},
	}}

	app := fiber.New()
	app.Use(Auth(store, zap.NewNop()))

	app.Get("/open", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/member", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString(Principal(c).UserID)
	})
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString(Principal(c).UserID)
	})

	return app
}

func TestAuth_AnonymousPassesOpenRoutes(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_GuardedRouteRejectsAnonymous(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/member", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_UnknownTokenIsAnonymous(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest("GET", "/member", nil)
	req.Header.Set("Authorization", "Bearer no-such-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_MemberTokenResolves(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest("GET", "/member", nil)
	req.Header.Set("Authorization", "Bearer member-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_MemberCannotReachAdminRoutes(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer member-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuth_AdminTokenResolves(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
