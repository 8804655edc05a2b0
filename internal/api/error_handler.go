package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

const internalErrorMessage = "internal server error"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err)
		if code >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
			msg = internalErrorMessage
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error) (int, string) {
	if domain.IsValidation(err) {
		return http.StatusBadRequest, err.Error()
	}

	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, domain.ErrMissingToken.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, domain.ErrTooManyAttempts.Error()

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrBookNotFound),
		errors.Is(err, domain.ErrLoanNotFound):
		return http.StatusNotFound, rootMessage(err)

	case errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrIncorrectPassword):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, domain.ErrUnsupportedUpload):
		return http.StatusBadRequest, domain.ErrUnsupportedUpload.Error()

	case errors.Is(err, domain.ErrUserHasDependents),
		errors.Is(err, domain.ErrBookOnLoan),
		errors.Is(err, domain.ErrLoanClosed),
		errors.Is(err, domain.ErrAlreadyReviewed):
		return http.StatusConflict, rootMessage(err)

	case errors.Is(err, domain.ErrGateMisconfigured):
		return http.StatusInternalServerError, internalErrorMessage
	}

	// Echo's own errors (bind failures, 404/405 from the router, body limit, rate limit).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	return http.StatusInternalServerError, internalErrorMessage
}

// rootMessage returns the message of the sentinel err wraps, so repository
// context never reaches the client.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrUserNotFound, domain.ErrBookNotFound, domain.ErrLoanNotFound,
		domain.ErrDuplicateIdentity, domain.ErrIncorrectPassword,
		domain.ErrUserHasDependents, domain.ErrBookOnLoan, domain.ErrLoanClosed, domain.ErrAlreadyReviewed,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
