package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// BookRepository implements ports.BookRepository on MySQL.
type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) ports.BookRepository {
	return &BookRepository{db: db}
}

const bookColumns = `id, title, author, category, description, published_on, cover_url, price, active, created_at`

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, category, description, published_on, cover_url, price, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.Title, book.Author, nullString(book.Category), nullString(book.Description),
		nullDate(book.PublishedOn), nullString(book.CoverURL), book.Price, book.Active, book.CreatedAt)
	if err != nil {
		return 0, dbError("create book", err, nil)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, dbError("create book", err, nil)
	}
	return id, nil
}

// Update only touches active books; COALESCE keeps the current cover when
// none was uploaded.
func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE books
		 SET title = ?, author = ?, category = ?, description = ?, published_on = ?, price = ?,
		     cover_url = COALESCE(?, cover_url)
		 WHERE id = ? AND active = TRUE`,
		book.Title, book.Author, nullString(book.Category), nullString(book.Description),
		nullDate(book.PublishedOn), book.Price, nullString(book.CoverURL), book.ID)
	if err != nil {
		return dbError("update book", err, nil)
	}
	return expectAffected("update book", res, domain.ErrBookNotFound)
}

func (r *BookRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE books SET active = FALSE WHERE id = ? AND active = TRUE`, id)
	if err != nil {
		return dbError("deactivate book", err, nil)
	}
	return expectAffected("deactivate book", res, domain.ErrBookNotFound)
}

func (r *BookRepository) FindActive(ctx context.Context, id int64) (*domain.Book, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ? AND active = TRUE`, id)
	b, err := scanBook(row)
	if err != nil {
		return nil, dbError("find book", err, domain.ErrBookNotFound)
	}
	return b, nil
}

// ListActive filters on active first, so hidden books never count towards
// the total.
func (r *BookRepository) ListActive(ctx context.Context, req domain.PageRequest, limit int) ([]domain.Book, int64, error) {
	conds := []string{"active = TRUE"}
	var args []any
	if req.HasQuery() {
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(author) LIKE ?)")
		p := req.LikePattern()
		args = append(args, p, p)
	}
	if c := strings.TrimSpace(req.Category); c != "" {
		conds = append(conds, "category = ?")
		args = append(args, c)
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`+where, args...).Scan(&total); err != nil {
		return nil, 0, dbError("count books", err, nil)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books`+where+` ORDER BY title, id LIMIT ? OFFSET ?`,
		append(args, limit, req.Offset(limit))...)
	if err != nil {
		return nil, 0, dbError("list books", err, nil)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, dbError("list books", err, nil)
	}
	return books, total, nil
}

func (r *BookRepository) Related(ctx context.Context, id int64, limit int) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		 WHERE active = TRUE AND id <> ?
		   AND category = (SELECT category FROM books WHERE id = ?)
		 ORDER BY RAND() LIMIT ?`,
		id, id, limit)
	if err != nil {
		return nil, dbError("related books", err, nil)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, dbError("related books", err, nil)
	}
	return books, nil
}

func (r *BookRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM books WHERE active = TRUE AND category IS NOT NULL AND category <> '' ORDER BY category`)
	if err != nil {
		return nil, dbError("categories", err, nil)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, dbError("scan category", err, nil)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("categories", err, nil)
	}
	return categories, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner, extra ...any) (*domain.Book, error) {
	var (
		b                     domain.Book
		category, desc, cover sql.NullString
		published             sql.NullTime
	)
	dest := append([]any{&b.ID, &b.Title, &b.Author, &category, &desc, &published, &cover, &b.Price, &b.Active, &b.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	b.Category = category.String
	b.Description = desc.String
	b.CoverURL = cover.String
	if published.Valid {
		t := published.Time
		b.PublishedOn = &t
	}
	return &b, nil
}

func collectBooks(rows *sql.Rows) ([]domain.Book, error) {
	defer rows.Close()
	books := []domain.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// qualify prefixes every column of a comma separated list with alias.
func qualify(alias, columns string) string {
	cols := strings.Split(columns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
