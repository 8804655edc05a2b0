package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// LoanService implements borrowing and returning books.
type LoanService struct {
	loans ports.LoanRepository
	books ports.BookRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
	now   func() time.Time
}

func NewLoanService(loans ports.LoanRepository, books ports.BookRepository, audit ports.AuditRecorder, log zerolog.Logger) *LoanService {
	return &LoanService{loans: loans, books: books, audit: audit, log: log, now: time.Now}
}

// Borrow opens a loan on an active book. The store rejects a second active
// loan of the same book by the same user.
func (s *LoanService) Borrow(ctx context.Context, actor domain.Principal, bookID int64) (*domain.Loan, error) {
	book, err := s.books.FindActive(ctx, bookID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	due := now.Add(domain.LoanPeriod)
	id, err := s.loans.Create(ctx, actor.SubjectID, bookID, due)
	if err != nil {
		return nil, err
	}

	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditLoanOpened,
		Entity:   "loan",
		EntityID: id,
	})
	return &domain.Loan{
		ID:         id,
		UserID:     actor.SubjectID,
		BookID:     bookID,
		Status:     domain.LoanActive,
		BorrowedAt: now,
		DueAt:      due,
		BookTitle:  book.Title,
		BookAuthor: book.Author,
	}, nil
}

// Return closes one of the caller's own active loans.
func (s *LoanService) Return(ctx context.Context, actor domain.Principal, loanID int64) error {
	if err := s.loans.Close(ctx, loanID, actor.SubjectID); err != nil {
		return err
	}
	s.recordReturn(actor, loanID)
	return nil
}

func (s *LoanService) Mine(ctx context.Context, actor domain.Principal) ([]domain.Loan, error) {
	loans, err := s.loans.ListByUser(ctx, actor.SubjectID)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatus(loans), nil
}

func (s *LoanService) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Loan], error) {
	loans, total, err := s.loans.List(ctx, req, domain.LoansPageSize)
	if err != nil {
		return domain.Page[domain.Loan]{}, err
	}
	return domain.NewPage(s.withEffectiveStatus(loans), total, req, domain.LoansPageSize), nil
}

// SetStatus lets an administrator close any loan. Returned is the only
// status that can be set by hand; Overdue is derived.
func (s *LoanService) SetStatus(ctx context.Context, actor domain.Principal, loanID int64, status domain.LoanStatus) error {
	if status != domain.LoanReturned {
		return domain.NewValidationError("status must be %s", domain.LoanReturned)
	}
	if err := s.loans.Close(ctx, loanID, 0); err != nil {
		return err
	}
	s.recordReturn(actor, loanID)
	return nil
}

func (s *LoanService) recordReturn(actor domain.Principal, loanID int64) {
	s.log.Info().Int64("loan_id", loanID).Int64("actor_id", actor.SubjectID).Msg("loan returned")
	record(s.audit, domain.AuditEvent{
		ActorID:  actor.SubjectID,
		Action:   domain.AuditLoanReturned,
		Entity:   "loan",
		EntityID: loanID,
	})
}

func (s *LoanService) withEffectiveStatus(loans []domain.Loan) []domain.Loan {
	now := s.now()
	for i := range loans {
		loans[i].Status = loans[i].EffectiveStatus(now)
	}
	return loans
}
