package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/library-system/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, role := range []domain.Role{domain.RoleRegistered, domain.RoleAdministrator} {
		token, err := svc.Issue(42, role)
		if err != nil {
			t.Fatalf("Issue(%s) returned error: %v", role, err)
		}
		got, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if got.SubjectID != 42 || got.Role != role {
			t.Fatalf("unexpected principal: %+v", got)
		}
	}
}

func TestTokenService_TokensForSameSubjectDiffer(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = fixedClock(time.Now())

	a, _ := svc.Issue(1, domain.RoleRegistered)
	b, _ := svc.Issue(1, domain.RoleRegistered)
	if a == b {
		t.Fatalf("expected distinct tokens for two logins")
	}
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", time.Hour)
	svc.now = fixedClock(issuedAt)

	token, err := svc.Issue(7, domain.RoleRegistered)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = fixedClock(issuedAt.Add(59 * time.Minute))
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	svc.now = fixedClock(issuedAt.Add(time.Hour + time.Second))
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _ := svc.Issue(7, domain.RoleRegistered)

	parts := strings.Split(token, ".")
	forged, _ := NewTokenService("secret", time.Hour).Issue(7, domain.RoleAdministrator)
	// Administrator payload with the Registered signature.
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered payload, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _ := NewTokenService("other", time.Hour).Issue(7, domain.RoleRegistered)
	if _, err := NewTokenService("secret", time.Hour).Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	claims := tokenClaims{
		SubjectID: 7,
		Role:      domain.RoleAdministrator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := svc.Verify(none); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign HS512: %v", err)
	}
	if _, err := svc.Verify(hs512); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512, got %v", err)
	}
}

func TestTokenService_RejectsMissingExpiryAndUnknownRole(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"subjectId": 7,
		"role":      "Administrator",
	}).SignedString([]byte("secret"))
	if _, err := svc.Verify(noExp); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without exp, got %v", err)
	}

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"subjectId": 7,
		"role":      "superuser",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if _, err := svc.Verify(badRole); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}

func TestTokenService_IssueRejectsInvalidInput(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	if _, err := svc.Issue(0, domain.RoleRegistered); err == nil {
		t.Fatalf("expected error for zero subject")
	}
	if _, err := svc.Issue(1, domain.Role(99)); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
