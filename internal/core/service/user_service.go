package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

const avatarPrefix = "avatars"

// UserService implements profile management and admin user administration.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	store  ports.ObjectStore
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	store ports.ObjectStore,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{repo: repo, hasher: hasher, store: store, audit: audit, log: log}
}

func (s *UserService) Profile(ctx context.Context, userID int64) (domain.PublicProfile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	return user.PublicProfile(), nil
}

// UpdateProfile changes the display name and optionally replaces the avatar.
func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (domain.PublicProfile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.PublicProfile{}, domain.NewValidationError("name is required")
	}

	var avatarURL *string
	if in.Avatar != nil {
		url, err := storeImage(ctx, s.store, avatarPrefix, in.Avatar)
		if err != nil {
			return domain.PublicProfile{}, err
		}
		avatarURL = &url
	}

	if err := s.repo.UpdateProfile(ctx, in.UserID, name, avatarURL); err != nil {
		return domain.PublicProfile{}, err
	}
	return s.Profile(ctx, in.UserID)
}

// ChangePassword replaces the password hash after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" || next == "" {
		return domain.NewValidationError("current and new password are required")
	}
	if err := checkPasswordLength(next); err != nil {
		return err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if s.hasher.Compare(user.PasswordHash, current) != nil {
		return domain.ErrIncorrectPassword
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return err
	}

	record(s.audit, domain.AuditEvent{
		ActorID:  userID,
		Action:   domain.AuditPasswordChanged,
		Entity:   "user",
		EntityID: userID,
	})
	return nil
}

func (s *UserService) ListUsers(ctx context.Context, req domain.PageRequest) (domain.Page[domain.PublicProfile], error) {
	users, total, err := s.repo.List(ctx, req, domain.UsersPageSize)
	if err != nil {
		return domain.Page[domain.PublicProfile]{}, err
	}
	return domain.NewPage(users, total, req, domain.UsersPageSize), nil
}

// ChangeRole sets another user's role. Administrators cannot change their own
// role, which keeps at least the acting admin in place.
func (s *UserService) ChangeRole(ctx context.Context, actor domain.Principal, userID int64, role domain.Role) error {
	if !role.Valid() {
		return domain.NewValidationError("role must be Registered or Administrator")
	}
	if actor.SubjectID == userID {
		return domain.NewValidationError("you cannot change your own role")
	}

	if err := s.repo.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	s.log.Info().Int64("actor_id", actor.SubjectID).Int64("user_id", userID).Str("role", role.String()).Msg("role changed")
	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditRoleChanged,
		Entity:   "user",
		EntityID: userID,
		Details:  map[string]string{"role": role.String()},
	})
	return nil
}

// DeleteUser removes an account that has no purchases, loans or reviews.
func (s *UserService) DeleteUser(ctx context.Context, actor domain.Principal, userID int64) error {
	if actor.SubjectID == userID {
		return domain.NewValidationError("you cannot delete your own account")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Int64("actor_id", actor.SubjectID).Int64("user_id", userID).Msg("user deleted")
	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditUserDeleted,
		Entity:   "user",
		EntityID: userID,
	})
	return nil
}
