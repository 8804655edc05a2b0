package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating and comment on a book; one per user and book.
type Review struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	BookID       int64     `json:"bookId"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment,omitempty"`
	ReviewerName string    `json:"reviewerName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
