package auth

import (
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/labstack/echo/v4"
)

const userContextKey = "auth.user"

// Middleware authenticates every request and stores the user on the echo
// context. Requests without a valid token are rejected.
func Middleware(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := svc.Authenticate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin allows admins and super admins through.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(func(u domain.User) bool { return u.Admin || u.SuperAdmin })
}

// RequireSuperAdmin allows super admins only.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return requireRole(func(u domain.User) bool { return u.SuperAdmin })
}

func requireRole(allowed func(domain.User) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperr.NewUnauthorized("missing bearer token")
			}
			if !allowed(user) {
				return apperr.NewForbidden("insufficient permissions")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user stored by Middleware.
func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(userContextKey).(domain.User)
	return user, ok
}
