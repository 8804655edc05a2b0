package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// BookRepository defines persistence operations for the catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (int64, error)
	// Update overwrites the editable fields; an empty CoverURL keeps the current cover.
	Update(ctx context.Context, book *domain.Book) error
	// Deactivate soft-deletes a book.
	Deactivate(ctx context.Context, id int64) error
	// FindActive returns an active book or domain.ErrBookNotFound.
	FindActive(ctx context.Context, id int64) (*domain.Book, error)
	// ListActive returns one page of active books matching req and the total count.
	ListActive(ctx context.Context, req domain.PageRequest, limit int) ([]domain.Book, int64, error)
	Related(ctx context.Context, id int64, limit int) ([]domain.Book, error)
	Categories(ctx context.Context) ([]string, error)
}
