package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

const publishedOnLayout = "2006-01-02"

// BookHandler serves the catalog.
type BookHandler struct {
	books ports.BookService
}

func NewBookHandler(books ports.BookService) *BookHandler {
	return &BookHandler{books: books}
}

type createdResponse struct {
	ID int64 `json:"id"`
}

// List returns one page of active books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        q         query  string  false  "Search over title and author"
// @Param        category  query  string  false  "Exact category"
// @Param        page      query  int     false  "Page number (1-based)"
// @Success      200  {object}  domain.Page[domain.Book]
// @Failure      400  {object}  map[string]string
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.books.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns an active book.
//
// @Summary      Book detail
// @Tags         books
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	book, err := h.books.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Related returns up to three active books sharing the category.
//
// @Summary      Related books
// @Tags         books
// @Produce      json
// @Param        id  path  int  true  "Book ID"
// @Success      200  {array}  domain.Book
// @Router       /books/{id}/related [get]
func (h *BookHandler) Related(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	books, err := h.books.Related(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Categories lists the distinct categories of active books.
//
// @Summary      Categories
// @Tags         books
// @Produce      json
// @Success      200  {array}  string
// @Router       /categories [get]
func (h *BookHandler) Categories(c echo.Context) error {
	categories, err := h.books.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create adds a book to the catalog.
//
// @Summary      Create book
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        author       formData  string  true   "Author"
// @Param        category     formData  string  false  "Category"
// @Param        description  formData  string  false  "Description"
// @Param        publishedOn  formData  string  false  "Publication date (YYYY-MM-DD)"
// @Param        price        formData  number  true   "Price"
// @Param        cover        formData  file    false  "Cover image"
// @Success      201  {object}  createdResponse
// @Failure      400  {object}  map[string]string
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	in, closeCover, err := bookInput(c)
	if err != nil {
		return err
	}
	defer closeCover()

	id, err := h.books.Create(c.Request().Context(), p, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update overwrites a book; the cover is replaced only when a new one is sent.
//
// @Summary      Update book
// @Tags         admin
// @Accept       multipart/form-data
// @Security     BearerAuth
// @Param        id  path  int  true  "Book ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	in, closeCover, err := bookInput(c)
	if err != nil {
		return err
	}
	defer closeCover()

	if err := h.books.Update(c.Request().Context(), p, id, in); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete hides a book from the catalog.
//
// @Summary      Delete book
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  int  true  "Book ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.books.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bookInput(c echo.Context) (ports.BookInput, func() error, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil {
		return ports.BookInput{}, nil, domain.NewValidationError("price must be a number")
	}

	in := ports.BookInput{
		Title:       c.FormValue("title"),
		Author:      c.FormValue("author"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
		Price:       price,
	}

	if raw := strings.TrimSpace(c.FormValue("publishedOn")); raw != "" {
		t, err := time.Parse(publishedOnLayout, raw)
		if err != nil {
			return ports.BookInput{}, nil, domain.NewValidationError("publishedOn must be a YYYY-MM-DD date")
		}
		in.PublishedOn = &t
	}

	cover, closeCover, err := formUpload(c, "cover")
	if err != nil {
		return ports.BookInput{}, nil, err
	}
	in.Cover = cover
	return in, closeCover, nil
}
