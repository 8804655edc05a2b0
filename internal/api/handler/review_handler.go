package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type reviewRequest struct {
	BookID  int64  `json:"bookId" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// Create stores the caller's review of a book.
//
// @Summary      Review a book
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.reviews.Create(c.Request().Context(), p, ports.ReviewInput{
		BookID:  req.BookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// ListByBook returns a book's reviews, newest first.
//
// @Summary      Book reviews
// @Tags         reviews
// @Produce      json
// @Param        bookId  path  int  true  "Book ID"
// @Success      200  {array}  domain.Review
// @Router       /reviews/{bookId} [get]
func (h *ReviewHandler) ListByBook(c echo.Context) error {
	bookID, err := idParam(c, "bookId")
	if err != nil {
		return err
	}

	reviews, err := h.reviews.ListByBook(c.Request().Context(), bookID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
