package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/hirepipe/ats/internal/core/domain"
)

// RequireRole rejects requests without an identity (401) and, when roles are
// given, identities holding none of them (403). With no roles any
// authenticated caller passes.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if len(allowed) > 0 {
				if _, ok := allowed[id.Role]; !ok {
					return domain.ErrForbidden
				}
			}
			return next(c)
		}
	}
}
