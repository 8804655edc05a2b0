package domain

import (
	"math"
	"strings"
)

// Page sizes per listing.
const (
	CatalogPageSize = 12
	UsersPageSize   = 10
	SalesPageSize   = 10
	LoansPageSize   = 10
)

// PageRequest carries the uniform list conventions: a free-text query,
// an exact-match category and a 1-based page number.
type PageRequest struct {
	Query    string
	Category string
	Page     int
}

// Offset returns the number of rows preceding the requested page. Pages too
// far out to address saturate at math.MaxInt, which still yields no rows.
func (r PageRequest) Offset(size int) int {
	if r.Page < 1 || size <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (r.Page - 1) * size
}

// HasQuery reports whether a free-text filter was supplied.
func (r PageRequest) HasQuery() bool {
	return strings.TrimSpace(r.Query) != ""
}

// LikePattern returns the lower-cased, escaped substring pattern for Query.
func (r PageRequest) LikePattern() string {
	return "%" + escapeLike(strings.ToLower(strings.TrimSpace(r.Query))) + "%"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Page is the paginated list envelope.
type Page[T any] struct {
	Items       []T `json:"items"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// NewPage assembles a Page from one page of rows and the total row count.
func NewPage[T any](items []T, total int64, req PageRequest, size int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		TotalPages:  TotalPages(total, size),
		CurrentPage: req.Page,
	}
}

// TotalPages is ceil(total / size).
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
