package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/api/metrics"
	"github.com/99minutos/library-system/internal/core/ports"
)

// PurchaseHandler serves checkout, the buyer's library and the admin sales list.
type PurchaseHandler struct {
	purchases ports.PurchaseService
}

func NewPurchaseHandler(purchases ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

// cartItem mirrors the storefront cart. Price is accepted for compatibility
// but never trusted: the stored catalog price is charged.
type cartItem struct {
	BookID int64   `json:"bookId" validate:"required,gt=0"`
	Price  float64 `json:"price"`
}

type checkoutRequest struct {
	Items []cartItem `json:"items" validate:"required,dive"`
}

type ownershipResponse struct {
	Owned bool `json:"owned"`
}

// Checkout buys every book in the cart.
//
// @Summary      Checkout cart
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Cart"
// @Success      201   {object}  domain.CheckoutResult
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /purchases [post]
func (h *PurchaseHandler) Checkout(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.BookID)
	}

	res, err := h.purchases.Checkout(c.Request().Context(), p, ids)
	if err != nil {
		return err
	}
	metrics.BooksPurchasedTotal.Add(float64(res.Purchased))
	return c.JSON(http.StatusCreated, res)
}

// Mine lists the caller's owned books, newest purchase first.
//
// @Summary      My library
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.OwnedBook
// @Router       /purchases/mine [get]
func (h *PurchaseHandler) Mine(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	books, err := h.purchases.Library(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Check reports whether the caller owns a book.
//
// @Summary      Ownership check
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {object}  ownershipResponse
// @Router       /purchases/check/{bookId} [get]
func (h *PurchaseHandler) Check(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	bookID, err := idParam(c, "bookId")
	if err != nil {
		return err
	}

	owned, err := h.purchases.Owns(c.Request().Context(), p, bookID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ownershipResponse{Owned: owned})
}

// Sales returns one page of sales for the admin view.
//
// @Summary      List sales
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q     query  string  false  "Search over buyer name, email and book title"
// @Param        page  query  int     false  "Page number (1-based)"
// @Success      200  {object}  domain.Page[domain.SaleRecord]
// @Router       /purchases [get]
func (h *PurchaseHandler) Sales(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.purchases.Sales(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
