package ports

import (
	"context"
	"io"

	"github.com/99minutos/library-system/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  domain.PublicProfile
}

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// Upload is an uploaded file on its way to object storage.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UpdateProfileInput carries a profile edit; Avatar is optional.
type UpdateProfileInput struct {
	UserID int64
	Name   string
	Avatar *Upload
}

// UserService covers self-service profile management and the admin user views.
type UserService interface {
	Profile(ctx context.Context, userID int64) (domain.PublicProfile, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (domain.PublicProfile, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	ListUsers(ctx context.Context, req domain.PageRequest) (domain.Page[domain.PublicProfile], error)
	ChangeRole(ctx context.Context, actor domain.Principal, userID int64, role domain.Role) error
	DeleteUser(ctx context.Context, actor domain.Principal, userID int64) error
}
