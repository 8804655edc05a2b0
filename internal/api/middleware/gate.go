package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/api/metrics"
	"github.com/99minutos/library-system/internal/core/domain"
)

const principalKey = "principal"

// Decision is the state carried between gate checks: either the principal
// established so far or the reason the request was rejected.
type Decision struct {
	Principal *domain.Principal
	Reject    error
}

// Check is one step of the gate. It receives the decision of the previous
// step and returns the next one.
type Check func(c echo.Context, d Decision) Decision

// Gate runs checks in order and stops at the first rejection, returning the
// rejection error to the HTTP error handler. On success the principal, if any,
// is stored in the request context for PrincipalFrom.
func Gate(checks ...Check) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var d Decision
			for _, check := range checks {
				d = check(c, d)
				if d.Reject != nil {
					metrics.GateRejectionsTotal.WithLabelValues(rejectionReason(d.Reject)).Inc()
					return d.Reject
				}
			}

			if d.Principal != nil {
				c.Set(principalKey, *d.Principal)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal stored by an earlier Gate.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// Auth admits any request carrying a valid bearer token.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return Gate(Authenticate(verifier))
}

// RBAC admits principals holding one of roles. It must run after Auth.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return Gate(RequireRole(roles...))
}

// AdminOnly authenticates the request and requires the administrator role.
func AdminOnly(verifier TokenVerifier) echo.MiddlewareFunc {
	return Gate(Authenticate(verifier), RequireRole(domain.RoleAdministrator))
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing_token"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "misconfigured"
	}
}
