package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/api/metrics"
	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

type LoanHandler struct {
	loans ports.LoanService
}

func NewLoanHandler(loans ports.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type borrowRequest struct {
	BookID int64 `json:"bookId" validate:"required,gt=0"`
}

type loanStatusRequest struct {
	Status domain.LoanStatus `json:"status" validate:"required"`
}

// Borrow opens a loan on an active book.
//
// @Summary      Borrow a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      borrowRequest  true  "Book to borrow"
// @Success      201   {object}  domain.Loan
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /loans [post]
func (h *LoanHandler) Borrow(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req borrowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	loan, err := h.loans.Borrow(c.Request().Context(), p, req.BookID)
	if err != nil {
		return err
	}
	metrics.LoansTotal.WithLabelValues("opened").Inc()
	return c.JSON(http.StatusCreated, loan)
}

// Mine lists the caller's loans.
//
// @Summary      My loans
// @Tags         loans
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Loan
// @Router       /loans/mine [get]
func (h *LoanHandler) Mine(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	loans, err := h.loans.Mine(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loans)
}

// Return closes one of the caller's loans.
//
// @Summary      Return a book
// @Tags         loans
// @Security     BearerAuth
// @Param        id  path  int  true  "Loan ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /loans/{id}/return [put]
func (h *LoanHandler) Return(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.loans.Return(c.Request().Context(), p, id); err != nil {
		return err
	}
	metrics.LoansTotal.WithLabelValues("returned").Inc()
	return c.NoContent(http.StatusNoContent)
}

// List returns one page of all loans.
//
// @Summary      List loans
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q     query  string  false  "Search over book title, user name and email"
// @Param        page  query  int     false  "Page number (1-based)"
// @Success      200  {object}  domain.Page[domain.Loan]
// @Router       /loans [get]
func (h *LoanHandler) List(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.loans.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// SetStatus applies a manual status transition; only Returned is accepted.
//
// @Summary      Set loan status
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                true  "Loan ID"
// @Param        body  body  loanStatusRequest  true  "New status"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /loans/{id} [put]
func (h *LoanHandler) SetStatus(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req loanStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.loans.SetStatus(c.Request().Context(), p, id, req.Status); err != nil {
		return err
	}
	metrics.LoansTotal.WithLabelValues("returned").Inc()
	return c.NoContent(http.StatusNoContent)
}
