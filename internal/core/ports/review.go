package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	// Create stores a review; a second review of the same book by the same
	// user yields domain.ErrAlreadyReviewed.
	Create(ctx context.Context, review *domain.Review) (int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
}

// ReviewInput carries a new review.
type ReviewInput struct {
	BookID  int64
	Rating  int
	Comment string
}

// ReviewService defines review use cases.
type ReviewService interface {
	Create(ctx context.Context, actor domain.Principal, in ReviewInput) (int64, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
}
