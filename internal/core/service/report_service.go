package service

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// salesLedgerLimit caps the rows rendered into the exported sales report.
const salesLedgerLimit = 1000

// ReportService implements the admin dashboard and reports.
type ReportService struct {
	repo ports.ReportRepository
}

func NewReportService(repo ports.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	return s.repo.Stats(ctx)
}

func (s *ReportService) TopBooks(ctx context.Context) ([]domain.TopBook, error) {
	return s.repo.TopBooks(ctx, domain.TopRankingLimit)
}

func (s *ReportService) TopCustomers(ctx context.Context) ([]domain.TopCustomer, error) {
	return s.repo.TopCustomers(ctx, domain.TopRankingLimit)
}

// SalesLedger returns the most recent sales, newest first, for export.
func (s *ReportService) SalesLedger(ctx context.Context) ([]domain.SaleRecord, error) {
	return s.repo.RecentSales(ctx, salesLedgerLimit)
}
