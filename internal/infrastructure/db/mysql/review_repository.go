package mysql

import (
	"context"
	"database/sql"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// ReviewRepository implements ports.ReviewRepository on MySQL.
type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) ports.ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, book_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?)`,
		review.UserID, review.BookID, review.Rating, nullString(review.Comment), review.CreatedAt)
	if err != nil {
		switch {
		case isDuplicate(err):
			return 0, domain.ErrAlreadyReviewed
		case isMissingParent(err):
			return 0, domain.ErrBookNotFound
		}
		return 0, dbError("create review", err, nil)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, dbError("create review", err, nil)
	}
	return id, nil
}

func (r *ReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.book_id, r.rating, r.comment, r.created_at, u.name
		 FROM reviews r JOIN users u ON u.id = r.user_id
		 WHERE r.book_id = ?
		 ORDER BY r.created_at DESC, r.id DESC`, bookID)
	if err != nil {
		return nil, dbError("list reviews", err, nil)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var (
			rv      domain.Review
			comment sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.BookID, &rv.Rating, &comment, &rv.CreatedAt, &rv.ReviewerName); err != nil {
			return nil, dbError("scan review", err, nil)
		}
		rv.Comment = comment.String
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list reviews", err, nil)
	}
	return reviews, nil
}
