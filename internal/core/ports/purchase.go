package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// PurchaseRepository defines persistence operations for purchases.
type PurchaseRepository interface {
	// Checkout buys every listed book in one transaction. Books already owned
	// are skipped; bought books are removed from the buyer's wishlist.
	Checkout(ctx context.Context, userID int64, bookIDs []int64) (domain.CheckoutResult, error)
	Owned(ctx context.Context, userID int64) ([]domain.OwnedBook, error)
	Owns(ctx context.Context, userID, bookID int64) (bool, error)
	ListSales(ctx context.Context, req domain.PageRequest, limit int) ([]domain.SaleRecord, int64, error)
}

// PurchaseService defines purchase use cases.
type PurchaseService interface {
	Checkout(ctx context.Context, actor domain.Principal, bookIDs []int64) (domain.CheckoutResult, error)
	Library(ctx context.Context, actor domain.Principal) ([]domain.OwnedBook, error)
	Owns(ctx context.Context, actor domain.Principal, bookID int64) (bool, error)
	Sales(ctx context.Context, req domain.PageRequest) (domain.Page[domain.SaleRecord], error)
}
