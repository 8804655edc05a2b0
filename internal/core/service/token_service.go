package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/library-system/internal/core/domain"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = time.Hour

// tokenClaims is the signed payload: {subjectId, role, jti, iat, exp}.
type tokenClaims struct {
	SubjectID int64       `json:"subjectId"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. It holds no state
// besides the signing key, so verification needs no store lookup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for subjectID holding role, expiring after the TTL.
func (s *TokenService) Issue(subjectID int64, role domain.Role) (string, error) {
	if subjectID <= 0 || !role.Valid() {
		return "", fmt.Errorf("issue token: invalid subject %d / role %s", subjectID, role)
	}

	now := s.now()
	claims := tokenClaims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, payload shape and expiry. Every
// failure is reported as domain.ErrInvalidToken so callers cannot tell an
// expired token from a forged one.
func (s *TokenService) Verify(token string) (domain.Principal, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)

	var claims tokenClaims
	tkn, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Principal{}, domain.ErrInvalidToken
	}
	if claims.SubjectID <= 0 || !claims.Role.Valid() {
		return domain.Principal{}, domain.ErrInvalidToken
	}

	return domain.Principal{SubjectID: claims.SubjectID, Role: claims.Role}, nil
}
