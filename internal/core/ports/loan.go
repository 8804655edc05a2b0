package ports

import (
	"context"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
)

// LoanRepository defines persistence operations for loans.
type LoanRepository interface {
	// Create opens a loan. A second active loan on the same book by the same
	// user yields domain.ErrBookOnLoan.
	Create(ctx context.Context, userID, bookID int64, dueAt time.Time) (int64, error)
	// Close marks an active loan as returned. userID == 0 skips the owner filter.
	Close(ctx context.Context, loanID, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error)
	List(ctx context.Context, req domain.PageRequest, limit int) ([]domain.Loan, int64, error)
}

// LoanService defines loan use cases.
type LoanService interface {
	Borrow(ctx context.Context, actor domain.Principal, bookID int64) (*domain.Loan, error)
	Return(ctx context.Context, actor domain.Principal, loanID int64) error
	Mine(ctx context.Context, actor domain.Principal) ([]domain.Loan, error)
	List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Loan], error)
	SetStatus(ctx context.Context, actor domain.Principal, loanID int64, status domain.LoanStatus) error
}
