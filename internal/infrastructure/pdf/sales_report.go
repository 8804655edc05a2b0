// Package pdf renders the admin reports as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/99minutos/library-system/internal/core/domain"
)

const dateLayout = "2006-01-02 15:04"

// BuildSalesReport renders the dashboard totals followed by the sales ledger.
func BuildSalesReport(stats domain.DashboardStats, sales []domain.SaleRecord, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sales Report", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Sales Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Generated: "+generatedAt.UTC().Format(dateLayout)+" UTC")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Users: %d", stats.TotalUsers),
		fmt.Sprintf("Active books: %d", stats.TotalBooks),
		fmt.Sprintf("Sales: %d", stats.TotalSales),
		fmt.Sprintf("Revenue: $%.2f", stats.TotalRevenue),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Sales")
	pdf.Ln(8)

	widths := []float64{32, 45, 60, 25}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Date", "Customer", "Book", "Amount"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 9)
	if len(sales) == 0 {
		pdf.CellFormat(162, 7, "No sales recorded.", "1", 0, "C", false, 0, "")
		pdf.Ln(7)
	}
	for _, s := range sales {
		pdf.CellFormat(widths[0], 6, s.PurchasedAt.UTC().Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(truncate(s.UserName, 26)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(truncate(s.BookTitle, 36)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("$%.2f", s.AmountPaid), "1", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render sales report: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
