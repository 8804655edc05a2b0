package domain

import "time"

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "Active"
	LoanReturned LoanStatus = "Returned"
	LoanOverdue  LoanStatus = "Overdue"
)

// LoanPeriod is how long a borrowed book may be kept.
const LoanPeriod = 14 * 24 * time.Hour

// Loan is a time-limited borrow of a catalog book.
type Loan struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userId"`
	BookID     int64      `json:"bookId"`
	Status     LoanStatus `json:"status"`
	BorrowedAt time.Time  `json:"borrowedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
	BookTitle  string     `json:"bookTitle,omitempty"`
	BookAuthor string     `json:"bookAuthor,omitempty"`
	UserName   string     `json:"userName,omitempty"`
	UserEmail  string     `json:"userEmail,omitempty"`
}

// EffectiveStatus derives Overdue from an active loan past its due date.
// Overdue is never stored.
func (l Loan) EffectiveStatus(now time.Time) LoanStatus {
	if l.Status == LoanActive && now.After(l.DueAt) {
		return LoanOverdue
	}
	return l.Status
}
