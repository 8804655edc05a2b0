package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// PurchaseRepository implements ports.PurchaseRepository on MySQL.
type PurchaseRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPurchaseRepository(db *sql.DB) ports.PurchaseRepository {
	return &PurchaseRepository{db: db, now: time.Now}
}

// Checkout charges the stored catalog price, never a client supplied one.
// The unique (user_id, book_id) key decides ownership, so two concurrent
// checkouts of the same book cannot both succeed.
func (r *PurchaseRepository) Checkout(ctx context.Context, userID int64, bookIDs []int64) (domain.CheckoutResult, error) {
	var result domain.CheckoutResult
	at := r.now().UTC()

	err := WithTx(ctx, r.db, nil, func(ctx context.Context, tx DBTX) error {
		for _, bookID := range bookIDs {
			var price float64
			err := tx.QueryRowContext(ctx,
				`SELECT price FROM books WHERE id = ? AND active = TRUE`, bookID).Scan(&price)
			if err != nil {
				return dbError("checkout price", err, domain.ErrBookNotFound)
			}

			_, err = tx.ExecContext(ctx,
				`INSERT INTO purchases (user_id, book_id, amount_paid, purchased_at) VALUES (?, ?, ?, ?)`,
				userID, bookID, price, at)
			switch {
			case isDuplicate(err):
				result.AlreadyOwned++
				continue
			case isMissingParent(err):
				return domain.ErrUserNotFound
			case err != nil:
				return dbError("checkout insert", err, nil)
			}
			result.Purchased++

			if _, err := tx.ExecContext(ctx,
				`DELETE FROM wishlist WHERE user_id = ? AND book_id = ?`, userID, bookID); err != nil {
				return dbError("checkout wishlist", err, nil)
			}
		}
		return nil
	})
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	return result, nil
}

func (r *PurchaseRepository) Owned(ctx context.Context, userID int64) ([]domain.OwnedBook, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+qualify("b", bookColumns)+`, p.purchased_at
		 FROM purchases p JOIN books b ON b.id = p.book_id
		 WHERE p.user_id = ?
		 ORDER BY p.purchased_at DESC, p.id DESC`, userID)
	if err != nil {
		return nil, dbError("owned books", err, nil)
	}
	defer rows.Close()

	owned := []domain.OwnedBook{}
	for rows.Next() {
		var at time.Time
		b, err := scanBook(rows, &at)
		if err != nil {
			return nil, dbError("scan owned book", err, nil)
		}
		owned = append(owned, domain.OwnedBook{Book: *b, PurchasedAt: at})
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("owned books", err, nil)
	}
	return owned, nil
}

func (r *PurchaseRepository) Owns(ctx context.Context, userID, bookID int64) (bool, error) {
	var owned bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM purchases WHERE user_id = ? AND book_id = ?)`, userID, bookID).Scan(&owned)
	if err != nil {
		return false, dbError("owns book", err, nil)
	}
	return owned, nil
}

const salesFrom = ` FROM purchases p
	JOIN users u ON u.id = p.user_id
	JOIN books b ON b.id = p.book_id`

// ListSales searches buyer name, buyer email and book title.
func (r *PurchaseRepository) ListSales(ctx context.Context, req domain.PageRequest, limit int) ([]domain.SaleRecord, int64, error) {
	where := ""
	var args []any
	if req.HasQuery() {
		where = ` WHERE (LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ? OR LOWER(b.title) LIKE ?)`
		p := req.LikePattern()
		args = append(args, p, p, p)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+salesFrom+where, args...).Scan(&total); err != nil {
		return nil, 0, dbError("count sales", err, nil)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.purchased_at, p.amount_paid, u.name, u.email, b.title`+salesFrom+where+
			` ORDER BY p.purchased_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		append(args, limit, req.Offset(limit))...)
	if err != nil {
		return nil, 0, dbError("list sales", err, nil)
	}
	sales, err := collectSales(rows)
	if err != nil {
		return nil, 0, dbError("list sales", err, nil)
	}
	return sales, total, nil
}

func collectSales(rows *sql.Rows) ([]domain.SaleRecord, error) {
	defer rows.Close()
	sales := []domain.SaleRecord{}
	for rows.Next() {
		var s domain.SaleRecord
		if err := rows.Scan(&s.ID, &s.PurchasedAt, &s.AmountPaid, &s.UserName, &s.UserEmail, &s.BookTitle); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
