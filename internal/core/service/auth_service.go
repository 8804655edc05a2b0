package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// Password length bounds for registrations and password changes. bcrypt
// refuses input longer than MaxPasswordLength bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger

	decoyOnce sync.Once
	decoyHash string
}

// NewAuthService wires the account use cases. throttle and audit may be nil.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
}

// Register hashes the password and stores a new Registered user.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (int64, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return 0, domain.NewValidationError("email, name and password are required")
	}
	if err := checkPasswordLength(in.Password); err != nil {
		return 0, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleRegistered,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("user_id", id).Msg("user registered")
	record(s.audit, domain.AuditEvent{
		ActorID:  id,
		Action:   domain.AuditUserRegistered,
		Entity:   "user",
		EntityID: id,
	})
	return id, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password produce the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allowed(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// Burn the same bcrypt work as a real comparison.
		_ = s.hasher.Compare(s.decoy(), password)
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	return &ports.LoginResult{Token: token, User: user.PublicProfile()}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) decoy() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash("decoy-password-for-timing")
		if err == nil {
			s.decoyHash = hash
		}
	})
	return s.decoyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// record forwards an audit event when a recorder is configured.
func record(rec ports.AuditRecorder, event domain.AuditEvent) {
	if rec == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	rec.Record(event)
}

func checkPasswordLength(password string) error {
	if len(password) < MinPasswordLength {
		return domain.NewValidationError("password must be at least %d characters", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return domain.NewValidationError("password must be at most %d bytes", MaxPasswordLength)
	}
	return nil
}
