package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

const coverPrefix = "covers"

// BookService implements the catalog use cases.
type BookService struct {
	repo  ports.BookRepository
	store ports.ObjectStore
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewBookService(repo ports.BookRepository, store ports.ObjectStore, audit ports.AuditRecorder, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, store: store, audit: audit, log: log}
}

// List returns one page of active books. Inactive books never count towards
// totalPages.
func (s *BookService) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Book], error) {
	books, total, err := s.repo.ListActive(ctx, req, domain.CatalogPageSize)
	if err != nil {
		return domain.Page[domain.Book]{}, err
	}
	return domain.NewPage(books, total, req, domain.CatalogPageSize), nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.repo.FindActive(ctx, id)
}

// Related returns up to domain.RelatedBooksLimit active books sharing the
// category of id.
func (s *BookService) Related(ctx context.Context, id int64) ([]domain.Book, error) {
	book, err := s.repo.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.Category == "" {
		return []domain.Book{}, nil
	}
	return s.repo.Related(ctx, id, domain.RelatedBooksLimit)
}

func (s *BookService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *BookService) Create(ctx context.Context, actor domain.Principal, in ports.BookInput) (int64, error) {
	book, err := s.toBook(ctx, in)
	if err != nil {
		return 0, err
	}
	book.Active = true
	book.CreatedAt = time.Now().UTC()

	id, err := s.repo.Create(ctx, book)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("book_id", id).Int64("actor_id", actor.SubjectID).Msg("book created")
	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditBookCreated,
		Entity:   "book",
		EntityID: id,
		Details:  map[string]string{"title": book.Title},
	})
	return id, nil
}

func (s *BookService) Update(ctx context.Context, actor domain.Principal, id int64, in ports.BookInput) error {
	book, err := s.toBook(ctx, in)
	if err != nil {
		return err
	}
	book.ID = id

	if err := s.repo.Update(ctx, book); err != nil {
		return err
	}

	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditBookUpdated,
		Entity:   "book",
		EntityID: id,
	})
	return nil
}

// Delete soft-deletes a book; purchases and loans keep referencing it.
func (s *BookService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.log.Info().Int64("book_id", id).Int64("actor_id", actor.SubjectID).Msg("book deactivated")
	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditBookDeleted,
		Entity:   "book",
		EntityID: id,
	})
	return nil
}

func (s *BookService) toBook(ctx context.Context, in ports.BookInput) (*domain.Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	if title == "" || author == "" {
		return nil, domain.NewValidationError("title and author are required")
	}
	if in.Price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}

	book := &domain.Book{
		Title:       title,
		Author:      author,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		PublishedOn: in.PublishedOn,
		Price:       in.Price,
	}
	if in.Cover != nil {
		url, err := storeImage(ctx, s.store, coverPrefix, in.Cover)
		if err != nil {
			return nil, err
		}
		book.CoverURL = url
	}
	return book, nil
}
