package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// WishlistRepository defines persistence operations for wishlists.
type WishlistRepository interface {
	// Add is idempotent: adding a book twice keeps a single entry.
	Add(ctx context.Context, userID, bookID int64) error
	Remove(ctx context.Context, userID, bookID int64) error
	Contains(ctx context.Context, userID, bookID int64) (bool, error)
	// List returns the active books on the user's wishlist.
	List(ctx context.Context, userID int64) ([]domain.Book, error)
}

// WishlistService defines wishlist use cases.
type WishlistService interface {
	Add(ctx context.Context, actor domain.Principal, bookID int64) error
	Remove(ctx context.Context, actor domain.Principal, bookID int64) error
	Contains(ctx context.Context, actor domain.Principal, bookID int64) (bool, error)
	List(ctx context.Context, actor domain.Principal) ([]domain.Book, error)
}
