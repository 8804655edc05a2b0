package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
)

func render(t *testing.T, log zerolog.Logger, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/x", nil), rec)
	NewHTTPErrorHandler(log)(err, c)
	return rec
}

func TestHTTPErrorHandler_Taxonomy(t *testing.T) {
	cases := []struct {
		err  error
		code int
		body string
	}{
		{domain.NewValidationError("name is required"), http.StatusBadRequest, "name is required"},
		{domain.ErrDuplicateIdentity, http.StatusBadRequest, "identity already registered"},
		{domain.ErrIncorrectPassword, http.StatusBadRequest, "current password is incorrect"},
		{fmt.Errorf("%w: text/plain", domain.ErrUnsupportedUpload), http.StatusBadRequest, "unsupported upload type"},
		{domain.ErrMissingToken, http.StatusUnauthorized, "no token provided"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid token"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{fmt.Errorf("find user: %w", domain.ErrUserNotFound), http.StatusNotFound, "user not found"},
		{domain.ErrBookNotFound, http.StatusNotFound, "book not found"},
		{domain.ErrLoanNotFound, http.StatusNotFound, "loan not found"},
		{fmt.Errorf("delete user: %w", domain.ErrUserHasDependents), http.StatusConflict, "user has dependent records"},
		{domain.ErrBookOnLoan, http.StatusConflict, "book already on loan"},
		{domain.ErrLoanClosed, http.StatusConflict, "loan already returned"},
		{domain.ErrAlreadyReviewed, http.StatusConflict, "book already reviewed"},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts"},
		{echo.ErrNotFound, http.StatusNotFound, "Not Found"},
	}

	for _, tc := range cases {
		rec := render(t, zerolog.Nop(), tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		want := `{"error":"` + tc.body + `"}` + "\n"
		if rec.Body.String() != want {
			t.Fatalf("%v: expected body %s, got %s", tc.err, want, rec.Body.String())
		}
	}
}

func TestHTTPErrorHandler_InternalErrorsAreLoggedNotEchoed(t *testing.T) {
	for _, err := range []error{
		errors.New("dial tcp 10.0.0.3:3306: connection refused"),
		domain.ErrGateMisconfigured,
	} {
		var logs bytes.Buffer
		rec := render(t, zerolog.New(&logs), err)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%v: expected 500, got %d", err, rec.Code)
		}
		if rec.Body.String() != `{"error":"internal server error"}`+"\n" {
			t.Fatalf("%v: cause leaked to client: %s", err, rec.Body.String())
		}
		if !strings.Contains(logs.String(), err.Error()) {
			t.Fatalf("%v: cause not logged: %s", err, logs.String())
		}
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponses(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrBookNotFound, c)

	if rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %q", rec.Body.String())
	}
}
