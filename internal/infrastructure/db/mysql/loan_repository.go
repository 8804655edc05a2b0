package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// LoanRepository implements ports.LoanRepository on MySQL.
type LoanRepository struct {
	db DBTX
}

func NewLoanRepository(db DBTX) ports.LoanRepository {
	return &LoanRepository{db: db}
}

// Create relies on the unique (user_id, active_book_id) key: a second open
// loan of the same book fails with a duplicate entry.
func (r *LoanRepository) Create(ctx context.Context, userID, bookID int64, dueAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO loans (user_id, book_id, status, borrowed_at, due_at) VALUES (?, ?, 'Active', ?, ?)`,
		userID, bookID, time.Now().UTC(), dueAt.UTC())
	if err != nil {
		switch {
		case isDuplicate(err):
			return 0, domain.ErrBookOnLoan
		case isMissingParent(err):
			return 0, domain.ErrBookNotFound
		}
		return 0, dbError("create loan", err, nil)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, dbError("create loan", err, nil)
	}
	return id, nil
}

// Close returns an active loan. When nothing was updated it tells a missing
// (or foreign) loan apart from one that is already closed.
func (r *LoanRepository) Close(ctx context.Context, loanID, userID int64) error {
	ownerFilter := ""
	args := []any{time.Now().UTC(), loanID}
	if userID != 0 {
		ownerFilter = ` AND user_id = ?`
		args = append(args, userID)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE loans SET status = 'Returned', returned_at = ? WHERE id = ?`+ownerFilter+` AND status = 'Active'`,
		args...)
	if err != nil {
		return dbError("close loan", err, nil)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dbError("close loan", err, nil)
	}
	if n > 0 {
		return nil
	}

	var status string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM loans WHERE id = ?`+ownerFilter, args[1:]...).Scan(&status)
	if err != nil {
		return dbError("close loan", err, domain.ErrLoanNotFound)
	}
	return domain.ErrLoanClosed
}

const loanSelect = `SELECT l.id, l.user_id, l.book_id, l.status, l.borrowed_at, l.due_at, l.returned_at,
	b.title, b.author, u.name, u.email
	FROM loans l
	JOIN books b ON b.id = l.book_id
	JOIN users u ON u.id = l.user_id`

func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, loanSelect+` WHERE l.user_id = ? ORDER BY l.borrowed_at DESC, l.id DESC`, userID)
	if err != nil {
		return nil, dbError("list user loans", err, nil)
	}
	loans, err := collectLoans(rows)
	if err != nil {
		return nil, dbError("list user loans", err, nil)
	}
	return loans, nil
}

// List searches book title, borrower name and borrower email.
func (r *LoanRepository) List(ctx context.Context, req domain.PageRequest, limit int) ([]domain.Loan, int64, error) {
	where := ""
	var args []any
	if req.HasQuery() {
		where = ` WHERE (LOWER(b.title) LIKE ? OR LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?)`
		p := req.LikePattern()
		args = append(args, p, p, p)
	}

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM loans l JOIN books b ON b.id = l.book_id JOIN users u ON u.id = l.user_id`+where,
		args...).Scan(&total)
	if err != nil {
		return nil, 0, dbError("count loans", err, nil)
	}

	rows, err := r.db.QueryContext(ctx,
		loanSelect+where+` ORDER BY l.borrowed_at DESC, l.id DESC LIMIT ? OFFSET ?`,
		append(args, limit, req.Offset(limit))...)
	if err != nil {
		return nil, 0, dbError("list loans", err, nil)
	}
	loans, err := collectLoans(rows)
	if err != nil {
		return nil, 0, dbError("list loans", err, nil)
	}
	return loans, total, nil
}

func collectLoans(rows *sql.Rows) ([]domain.Loan, error) {
	defer rows.Close()
	loans := []domain.Loan{}
	for rows.Next() {
		var (
			l        domain.Loan
			status   string
			returned sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &status, &l.BorrowedAt, &l.DueAt, &returned,
			&l.BookTitle, &l.BookAuthor, &l.UserName, &l.UserEmail); err != nil {
			return nil, err
		}
		l.Status = domain.LoanStatus(status)
		if returned.Valid {
			t := returned.Time
			l.ReturnedAt = &t
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}
