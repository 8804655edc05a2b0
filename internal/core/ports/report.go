package ports

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
)

// ReportRepository runs the aggregate queries behind the admin dashboard.
type ReportRepository interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
	TopBooks(ctx context.Context, limit int) ([]domain.TopBook, error)
	TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error)
	RecentSales(ctx context.Context, limit int) ([]domain.SaleRecord, error)
}

// ReportService defines admin reporting use cases.
type ReportService interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
	TopBooks(ctx context.Context) ([]domain.TopBook, error)
	TopCustomers(ctx context.Context) ([]domain.TopCustomer, error)
	SalesLedger(ctx context.Context) ([]domain.SaleRecord, error)
}
