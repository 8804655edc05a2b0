package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/ports"
	"github.com/99minutos/library-system/internal/infrastructure/pdf"
)

// ReportHandler serves the admin dashboard.
type ReportHandler struct {
	reports ports.ReportService
	now     func() time.Time
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports, now: time.Now}
}

// Stats returns the dashboard totals.
//
// @Summary      Dashboard stats
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Router       /admin/stats [get]
func (h *ReportHandler) Stats(c echo.Context) error {
	stats, err := h.reports.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// TopBooks returns the best selling books.
//
// @Summary      Top books
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.TopBook
// @Router       /admin/reports/top-books [get]
func (h *ReportHandler) TopBooks(c echo.Context) error {
	books, err := h.reports.TopBooks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// TopCustomers returns the customers who spent the most.
//
// @Summary      Top customers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.TopCustomer
// @Router       /admin/reports/top-customers [get]
func (h *ReportHandler) TopCustomers(c echo.Context) error {
	customers, err := h.reports.TopCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// SalesPDF exports the totals and the recent sales ledger as a PDF.
//
// @Summary      Sales report
// @Tags         admin
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}  file
// @Router       /admin/reports/sales.pdf [get]
func (h *ReportHandler) SalesPDF(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.reports.Stats(ctx)
	if err != nil {
		return err
	}
	sales, err := h.reports.SalesLedger(ctx)
	if err != nil {
		return err
	}

	now := h.now()
	doc, err := pdf.BuildSalesReport(stats, sales, now)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="sales-`+now.UTC().Format("20060102")+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
