package service

import (
	"context"
	"strings"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

const maxCommentLength = 2000

// ReviewService implements book reviews.
type ReviewService struct {
	reviews ports.ReviewRepository
	books   ports.BookRepository
}

func NewReviewService(reviews ports.ReviewRepository, books ports.BookRepository) *ReviewService {
	return &ReviewService{reviews: reviews, books: books}
}

func (s *ReviewService) Create(ctx context.Context, actor domain.Principal, in ports.ReviewInput) (int64, error) {
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return 0, domain.NewValidationError("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	comment := strings.TrimSpace(in.Comment)
	if len(comment) > maxCommentLength {
		return 0, domain.NewValidationError("comment must be at most %d characters", maxCommentLength)
	}
	if _, err := s.books.FindActive(ctx, in.BookID); err != nil {
		return 0, err
	}

	return s.reviews.Create(ctx, &domain.Review{
		UserID:    actor.SubjectID,
		BookID:    in.BookID,
		Rating:    in.Rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *ReviewService) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	return s.reviews.ListByBook(ctx, bookID)
}
