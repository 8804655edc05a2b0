package mysql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/library-system/internal/core/domain"
)

var bookRowColumns = []string{"id", "title", "author", "category", "description", "published_on", "cover_url", "price", "active", "created_at"}

func TestBookRepository_ListActive_FiltersBeforeCounting(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookRepository(db)
	req := domain.PageRequest{Query: "Dune", Category: "SciFi", Page: 1}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM books WHERE active = TRUE AND \(LOWER\(title\) LIKE \? OR LOWER\(author\) LIKE \?\) AND category = \?`).
		WithArgs("%dune%", "%dune%", "SciFi").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`FROM books WHERE active = TRUE .* ORDER BY title, id LIMIT \? OFFSET \?`).
		WithArgs("%dune%", "%dune%", "SciFi", 12, 0).
		WillReturnRows(sqlmock.NewRows(bookRowColumns).
			AddRow(int64(1), "Dune", "Herbert", "SciFi", nil, nil, nil, 9.5, true, time.Now()))

	books, total, err := repo.ListActive(context.Background(), req, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Nil(t, books[0].PublishedOn)
	assert.Equal(t, "SciFi", books[0].Category)
}

func TestBookRepository_ListActive_EscapesWildcards(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookRepository(db)
	req := domain.PageRequest{Query: `50%_OFF\now`, Page: 1}
	want := `%50\%\_off\\now%`

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM books`).
		WithArgs(want, want).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`FROM books WHERE active = TRUE .* LIMIT \? OFFSET \?`).
		WithArgs(want, want, 12, 0).
		WillReturnRows(sqlmock.NewRows(bookRowColumns))

	books, total, err := repo.ListActive(context.Background(), req, 12)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)
}

func TestBookRepository_FindActive_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(`FROM books WHERE id = \? AND active = TRUE`).WithArgs(int64(3)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActive(context.Background(), 3)
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookRepository_Deactivate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookRepository(db)

	mock.ExpectExec(`UPDATE books SET active = FALSE WHERE id = \? AND active = TRUE`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Deactivate(context.Background(), 3), domain.ErrBookNotFound)
}

func TestBookRepository_Categories(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT category FROM books`).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("History").AddRow("SciFi"))

	cats, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"History", "SciFi"}, cats)
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "b.id, b.title", qualify("b", "id, title"))
}
