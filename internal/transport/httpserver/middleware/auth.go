// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
	"github.com/eguilbert/cineapi/internal/transport/httpserver/dto"
)

// principalKey is the Locals key the resolved principal lives under.
const principalKey = "principal"

// Auth resolves the bearer token to a principal and attaches it to the
// request. Requests without a token, or with an unknown one, pass
// through unauthenticated; route guards decide what that means.
func Auth(sessions domain.SessionStore, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Next()
		}

		principal, err := sessions.Resolve(c.Context(), token)
		if err != nil {
			logger.Error("session resolution failed", zap.Error(err))

			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: "session store unavailable",
				Code:  "SESSION_STORE_DOWN",
			})
		}

		if principal != nil {
			c.Locals(principalKey, principal)
		}

		return c.Next()
	}
}

// Principal returns the authenticated principal for the request, nil
// when the request is anonymous.
func Principal(c *fiber.Ctx) *domain.Principal {
	principal, _ := c.Locals(principalKey).(*domain.Principal)

	return principal
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Principal(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		}

		return c.Next()
	}
}

// RequireAdmin rejects anonymous requests and non-admin principals.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := Principal(c)
		if principal == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHENTICATED",
			})
		}
		if !principal.Admin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "admin role required",
				Code:  "FORBIDDEN",
			})
		}

		return c.Next()
	}
}
