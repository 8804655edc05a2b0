package domain

import "time"

// Purchase records a user owning a book. A user owns a given book at most once.
type Purchase struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	BookID      int64     `json:"bookId"`
	AmountPaid  float64   `json:"amountPaid"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

// OwnedBook is a book in the buyer's library together with the purchase date.
type OwnedBook struct {
	Book
	PurchasedAt time.Time `json:"purchasedAt"`
}

// SaleRecord is the admin view of a purchase.
type SaleRecord struct {
	ID          int64     `json:"id"`
	PurchasedAt time.Time `json:"purchasedAt"`
	AmountPaid  float64   `json:"amountPaid"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	BookTitle   string    `json:"bookTitle"`
}

// CheckoutResult summarises a cart checkout.
type CheckoutResult struct {
	Purchased    int `json:"purchased"`
	AlreadyOwned int `json:"alreadyOwned"`
}
