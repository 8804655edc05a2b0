package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

type stubLoanService struct {
	ports.LoanService
	borrowFn    func(ctx context.Context, actor domain.Principal, bookID int64) (*domain.Loan, error)
	setStatusFn func(ctx context.Context, actor domain.Principal, loanID int64, status domain.LoanStatus) error
}

func (s *stubLoanService) Borrow(ctx context.Context, actor domain.Principal, bookID int64) (*domain.Loan, error) {
	return s.borrowFn(ctx, actor, bookID)
}

func (s *stubLoanService) SetStatus(ctx context.Context, actor domain.Principal, loanID int64, status domain.LoanStatus) error {
	return s.setStatusFn(ctx, actor, loanID, status)
}

func TestLoanHandler_Borrow(t *testing.T) {
	e := newEcho()
	reader := domain.Principal{SubjectID: 4, Role: domain.RoleRegistered}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubLoanService{
		borrowFn: func(ctx context.Context, actor domain.Principal, bookID int64) (*domain.Loan, error) {
			if actor != reader || bookID != 12 {
				t.Fatalf("unexpected call: %+v %d", actor, bookID)
			}
			return &domain.Loan{ID: 1, UserID: 4, BookID: 12, Status: domain.LoanActive, BorrowedAt: now, DueAt: now.Add(domain.LoanPeriod)}, nil
		},
	}
	handler := NewLoanHandler(stub)

	c, rec := jsonRequest(e, http.MethodPost, "/api/loans", `{"bookId":12}`)

	if err := withPrincipal(reader, handler.Borrow)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestLoanHandler_SetStatus(t *testing.T) {
	e := newEcho()
	var got domain.LoanStatus
	stub := &stubLoanService{
		setStatusFn: func(ctx context.Context, actor domain.Principal, loanID int64, status domain.LoanStatus) error {
			got = status
			return nil
		},
	}
	handler := NewLoanHandler(stub)

	c, rec := jsonRequest(e, http.MethodPut, "/api/loans/3", `{"status":"Returned"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := withPrincipal(testAdmin, handler.SetStatus)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || got != domain.LoanReturned {
		t.Fatalf("expected 204 with Returned, got %d %q", rec.Code, got)
	}
}
