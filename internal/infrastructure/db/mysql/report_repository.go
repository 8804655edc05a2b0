package mysql

import (
	"context"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// ReportRepository implements ports.ReportRepository on MySQL.
type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) ports.ReportRepository {
	return &ReportRepository{db: db}
}

// Stats counts active books only; revenue is the sum actually paid.
func (r *ReportRepository) Stats(ctx context.Context) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM books WHERE active = TRUE),
			(SELECT COUNT(*) FROM purchases),
			(SELECT COALESCE(SUM(amount_paid), 0) FROM purchases)`).
		Scan(&s.TotalUsers, &s.TotalBooks, &s.TotalSales, &s.TotalRevenue)
	if err != nil {
		return domain.DashboardStats{}, dbError("dashboard stats", err, nil)
	}
	return s, nil
}

func (r *ReportRepository) TopBooks(ctx context.Context, limit int) ([]domain.TopBook, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.title, COUNT(p.id) AS sales, COALESCE(SUM(p.amount_paid), 0) AS revenue
		 FROM purchases p JOIN books b ON b.id = p.book_id
		 GROUP BY b.id, b.title
		 ORDER BY sales DESC, revenue DESC, b.id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, dbError("top books", err, nil)
	}
	defer rows.Close()

	top := []domain.TopBook{}
	for rows.Next() {
		var t domain.TopBook
		if err := rows.Scan(&t.BookID, &t.Title, &t.Sales, &t.Revenue); err != nil {
			return nil, dbError("scan top book", err, nil)
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("top books", err, nil)
	}
	return top, nil
}

func (r *ReportRepository) TopCustomers(ctx context.Context, limit int) ([]domain.TopCustomer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, COUNT(p.id) AS bought, COALESCE(SUM(p.amount_paid), 0) AS spent
		 FROM purchases p JOIN users u ON u.id = p.user_id
		 GROUP BY u.id, u.name, u.email
		 ORDER BY spent DESC, bought DESC, u.id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, dbError("top customers", err, nil)
	}
	defer rows.Close()

	top := []domain.TopCustomer{}
	for rows.Next() {
		var t domain.TopCustomer
		if err := rows.Scan(&t.UserID, &t.Name, &t.Email, &t.BooksBought, &t.TotalSpent); err != nil {
			return nil, dbError("scan top customer", err, nil)
		}
		top = append(top, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("top customers", err, nil)
	}
	return top, nil
}

func (r *ReportRepository) RecentSales(ctx context.Context, limit int) ([]domain.SaleRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.purchased_at, p.amount_paid, u.name, u.email, b.title`+salesFrom+
			` ORDER BY p.purchased_at DESC, p.id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, dbError("recent sales", err, nil)
	}
	sales, err := collectSales(rows)
	if err != nil {
		return nil, dbError("recent sales", err, nil)
	}
	return sales, nil
}
