package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecom-labs/product-api/internal/auth"
)

const (
	CtxUsername = "username"
	CtxRole     = "role"
)

// RequireUser authenticates the bearer token through the configured verifier
// strategy. A missing, invalid or expired token is rejected with 401 before
// any further checks run.
func RequireUser(verifier auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			principal, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(CtxUsername, principal.Username)
			c.Set(CtxRole, principal.Role)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated principals below the required tier with
// 403, which is deliberately distinct from the 401 an unauthenticated
// request gets.
func RequireRole(required auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(auth.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing role")
			}
			if !role.Allows(required) {
				return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
			}
			return next(c)
		}
	}
}
