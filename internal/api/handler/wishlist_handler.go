package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/ports"
)

type WishlistHandler struct {
	wishlist ports.WishlistService
}

func NewWishlistHandler(wishlist ports.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

type wishlistRequest struct {
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

type wishedResponse struct {
	Wished bool `json:"wished"`
}

// List returns the active books on the caller's wishlist.
//
// @Summary      My wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Book
// @Router       /wishlist [get]
func (h *WishlistHandler) List(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	books, err := h.wishlist.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Add puts a book on the wishlist. Adding it twice is not an error.
//
// @Summary      Add to wishlist
// @Tags         wishlist
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  wishlistRequest  true  "Book"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /wishlist [post]
func (h *WishlistHandler) Add(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req wishlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.wishlist.Add(c.Request().Context(), p, req.BookID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove takes a book off the wishlist.
//
// @Summary      Remove from wishlist
// @Tags         wishlist
// @Security     BearerAuth
// @Param        bookId  path  int  true  "Book ID"
// @Success      204
// @Router       /wishlist/{bookId} [delete]
func (h *WishlistHandler) Remove(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	bookID, err := idParam(c, "bookId")
	if err != nil {
		return err
	}

	if err := h.wishlist.Remove(c.Request().Context(), p, bookID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Check reports whether a book is on the caller's wishlist.
//
// @Summary      Wishlist check
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {object}  wishedResponse
// @Router       /wishlist/check/{bookId} [get]
func (h *WishlistHandler) Check(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	bookID, err := idParam(c, "bookId")
	if err != nil {
		return err
	}

	wished, err := h.wishlist.Contains(c.Request().Context(), p, bookID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, wishedResponse{Wished: wished})
}
