package mysql

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// WishlistRepository implements ports.WishlistRepository on MySQL.
type WishlistRepository struct {
	db DBTX
}

func NewWishlistRepository(db DBTX) ports.WishlistRepository {
	return &WishlistRepository{db: db}
}

// Add is idempotent through the (user_id, book_id) primary key.
func (r *WishlistRepository) Add(ctx context.Context, userID, bookID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlist (user_id, book_id) VALUES (?, ?) ON DUPLICATE KEY UPDATE user_id = user_id`,
		userID, bookID)
	if err != nil {
		if isMissingParent(err) {
			return domain.ErrBookNotFound
		}
		return dbError("add to wishlist", err, nil)
	}
	return nil
}

// Remove is a no-op for books that are not on the list.
func (r *WishlistRepository) Remove(ctx context.Context, userID, bookID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wishlist WHERE user_id = ? AND book_id = ?`, userID, bookID); err != nil {
		return dbError("remove from wishlist", err, nil)
	}
	return nil
}

func (r *WishlistRepository) Contains(ctx context.Context, userID, bookID int64) (bool, error) {
	var wished bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlist WHERE user_id = ? AND book_id = ?)`, userID, bookID).Scan(&wished)
	if err != nil {
		return false, dbError("wishlist contains", err, nil)
	}
	return wished, nil
}

func (r *WishlistRepository) List(ctx context.Context, userID int64) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+qualify("b", bookColumns)+`
		 FROM wishlist w JOIN books b ON b.id = w.book_id
		 WHERE w.user_id = ? AND b.active = TRUE
		 ORDER BY w.added_at DESC`, userID)
	if err != nil {
		return nil, dbError("list wishlist", err, nil)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, dbError("list wishlist", err, nil)
	}
	return books, nil
}
