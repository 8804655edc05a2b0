package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

type stubReportService struct {
	ports.ReportService
	sales []domain.SaleRecord
}

func (s *stubReportService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	return domain.DashboardStats{TotalUsers: 3, TotalBooks: 4, TotalSales: int64(len(s.sales))}, nil
}

func (s *stubReportService) SalesLedger(ctx context.Context) ([]domain.SaleRecord, error) {
	return s.sales, nil
}

func TestReportHandler_SalesPDF(t *testing.T) {
	e := echo.New()
	handler := NewReportHandler(&stubReportService{sales: []domain.SaleRecord{
		{ID: 1, PurchasedAt: time.Now(), AmountPaid: 10, UserName: "Ana", BookTitle: "Dune"},
	}})
	handler.now = func() time.Time { return time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/reports/sales.pdf", nil), rec)

	if err := handler.SalesPDF(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != `attachment; filename="sales-20260504.pdf"` {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("body is not a PDF")
	}
}
