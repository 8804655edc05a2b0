package domain

// DashboardStats are the headline numbers of the admin dashboard.
type DashboardStats struct {
	TotalUsers   int64   `json:"totalUsers"`
	TotalBooks   int64   `json:"totalBooks"`
	TotalSales   int64   `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// TopBook ranks a book by number of sales.
type TopBook struct {
	BookID  int64   `json:"bookId"`
	Title   string  `json:"title"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// TopCustomer ranks a user by amount spent.
type TopCustomer struct {
	UserID      int64   `json:"userId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	BooksBought int64   `json:"booksBought"`
	TotalSpent  float64 `json:"totalSpent"`
}

// TopRankingLimit is the size of every "top N" report.
const TopRankingLimit = 5
