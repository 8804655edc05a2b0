package domain

import "time"

// Book is a catalog item. Inactive books are soft-deleted and hidden from
// every public listing.
type Book struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	PublishedOn *time.Time `json:"publishedOn,omitempty"`
	CoverURL    string     `json:"coverUrl,omitempty"`
	Price       float64    `json:"price"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RelatedBooksLimit caps the "more like this" list on a book page.
const RelatedBooksLimit = 3
