package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a user and returns its id. A duplicate email yields
	// domain.ErrDuplicateIdentity.
	Create(ctx context.Context, user *domain.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// UpdateProfile sets the display name and, when avatarURL is non-nil, the avatar.
	UpdateProfile(ctx context.Context, id int64, name string, avatarURL *string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	// Delete removes a user. Users referenced by purchases, loans or reviews
	// yield domain.ErrUserHasDependents.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, req domain.PageRequest, limit int) ([]domain.PublicProfile, int64, error)
}
