package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/domain"
)

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// Authenticate reads "Authorization: Bearer <token>" and verifies it.
// A missing or malformed header yields domain.ErrMissingToken; any
// verification failure, expiry included, yields domain.ErrInvalidToken.
func Authenticate(verifier TokenVerifier) Check {
	return func(c echo.Context, d Decision) Decision {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return Decision{Reject: domain.ErrMissingToken}
		}

		principal, err := verifier.Verify(token)
		if err != nil {
			return Decision{Reject: domain.ErrInvalidToken}
		}
		return Decision{Principal: &principal}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
