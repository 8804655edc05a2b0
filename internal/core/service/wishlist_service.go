package service

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// WishlistService implements the per-user wishlist.
type WishlistService struct {
	wishlist ports.WishlistRepository
	books    ports.BookRepository
}

func NewWishlistService(wishlist ports.WishlistRepository, books ports.BookRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, books: books}
}

// Add puts an active book on the wishlist; adding it again is a no-op.
func (s *WishlistService) Add(ctx context.Context, actor domain.Principal, bookID int64) error {
	if _, err := s.books.FindActive(ctx, bookID); err != nil {
		return err
	}
	return s.wishlist.Add(ctx, actor.SubjectID, bookID)
}

func (s *WishlistService) Remove(ctx context.Context, actor domain.Principal, bookID int64) error {
	return s.wishlist.Remove(ctx, actor.SubjectID, bookID)
}

func (s *WishlistService) Contains(ctx context.Context, actor domain.Principal, bookID int64) (bool, error) {
	return s.wishlist.Contains(ctx, actor.SubjectID, bookID)
}

func (s *WishlistService) List(ctx context.Context, actor domain.Principal) ([]domain.Book, error) {
	return s.wishlist.List(ctx, actor.SubjectID)
}
