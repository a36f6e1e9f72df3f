package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"workx.com/workx/internal/constants"
	apperrors "workx.com/workx/internal/errors"
	"workx.com/workx/internal/sessions"
)

const (
	principalContextKey = "workx.principal"
	tokenContextKey     = "workx.token"
)

// Authenticate resolves the bearer token into a principal and stows it
// on the request context. It never rejects; RequireRole does that.
func Authenticate(store sessions.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token != "" {
				if p, err := store.Resolve(c.Request().Context(), token); err == nil {
					c.Set(principalContextKey, *p)
					c.Set(tokenContextKey, token)
				}
			}
			return next(c)
		}
	}
}

// RequireRole gates a route on an authenticated principal of the given
// role: 401 when anonymous, 403 when the role does not match.
func RequireRole(role constants.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := Current(c)
			if !ok {
				return echo.NewHTTPError(apperrors.ErrLoginRequired.StatusCode, apperrors.ErrLoginRequired.Message)
			}
			if p.Role != role {
				return echo.NewHTTPError(apperrors.ErrWrongRole.StatusCode, apperrors.ErrWrongRole.Message)
			}
			return next(c)
		}
	}
}

// Current returns the principal set by Authenticate, if any.
func Current(c echo.Context) (sessions.Principal, bool) {
	p, ok := c.Get(principalContextKey).(sessions.Principal)
	return p, ok
}

// Token returns the session token of the current request, or "".
func Token(c echo.Context) string {
	t, _ := c.Get(tokenContextKey).(string)
	return t
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.Request().Header.Get("X-Session-Token")
}
