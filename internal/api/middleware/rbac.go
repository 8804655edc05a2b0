package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/domain"
)

// RequireRole admits principals holding one of roles. The principal comes from
// the previous check or, when composed as a separate middleware, from an
// earlier Gate. Running it with no principal at all is a wiring mistake and
// yields domain.ErrGateMisconfigured rather than a client error.
func RequireRole(roles ...domain.Role) Check {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c echo.Context, d Decision) Decision {
		principal := d.Principal
		if principal == nil {
			if p, ok := PrincipalFrom(c); ok {
				principal = &p
			}
		}
		if principal == nil {
			return Decision{Reject: domain.ErrGateMisconfigured}
		}

		if _, ok := allowed[principal.Role]; !ok {
			return Decision{Principal: principal, Reject: domain.ErrForbidden}
		}
		return Decision{Principal: principal}
	}
}
