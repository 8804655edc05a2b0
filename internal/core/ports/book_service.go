package ports

import (
	"context"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
)

// BookInput carries the editable fields of a catalog item.
type BookInput struct {
	Title       string
	Author      string
	Category    string
	Description string
	PublishedOn *time.Time
	Price       float64
	Cover       *Upload
}

// BookService defines catalog use cases.
type BookService interface {
	List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Book], error)
	Get(ctx context.Context, id int64) (*domain.Book, error)
	Related(ctx context.Context, id int64) ([]domain.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, actor domain.Principal, in BookInput) (int64, error)
	Update(ctx context.Context, actor domain.Principal, id int64, in BookInput) error
	Delete(ctx context.Context, actor domain.Principal, id int64) error
}
