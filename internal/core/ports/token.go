package ports

import "github.com/99minutos/library-system/internal/core/domain"

// TokenIssuer signs session credentials.
type TokenIssuer interface {
	Issue(subjectID int64, role domain.Role) (string, error)
}

// TokenVerifier checks a presented credential. Any failure is reported as
// domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (domain.Principal, error)
}

// PasswordHasher is a one-way salted hash with constant-time comparison.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}
