package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

type stubPurchaseService struct {
	ports.PurchaseService
	checkoutFn func(ctx context.Context, actor domain.Principal, bookIDs []int64) (domain.CheckoutResult, error)
	ownsFn     func(ctx context.Context, actor domain.Principal, bookID int64) (bool, error)
}

func (s *stubPurchaseService) Checkout(ctx context.Context, actor domain.Principal, bookIDs []int64) (domain.CheckoutResult, error) {
	return s.checkoutFn(ctx, actor, bookIDs)
}

func (s *stubPurchaseService) Owns(ctx context.Context, actor domain.Principal, bookID int64) (bool, error) {
	return s.ownsFn(ctx, actor, bookID)
}

func TestPurchaseHandler_Checkout_IgnoresClientPrice(t *testing.T) {
	e := newEcho()
	buyer := domain.Principal{SubjectID: 3, Role: domain.RoleRegistered}
	stub := &stubPurchaseService{
		checkoutFn: func(ctx context.Context, actor domain.Principal, bookIDs []int64) (domain.CheckoutResult, error) {
			if actor != buyer {
				t.Fatalf("unexpected actor %+v", actor)
			}
			if len(bookIDs) != 2 || bookIDs[0] != 10 || bookIDs[1] != 11 {
				t.Fatalf("unexpected ids %v", bookIDs)
			}
			return domain.CheckoutResult{Purchased: 2}, nil
		},
	}
	handler := NewPurchaseHandler(stub)

	c, rec := jsonRequest(e, http.MethodPost, "/api/purchases",
		`{"items":[{"bookId":10,"price":0.01},{"bookId":11,"price":0}]}`)

	if err := withPrincipal(buyer, handler.Checkout)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"purchased\":2,\"alreadyOwned\":0}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestPurchaseHandler_Checkout_RejectsBadItem(t *testing.T) {
	e := newEcho()
	handler := NewPurchaseHandler(&stubPurchaseService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/purchases", `{"items":[{"bookId":0}]}`)

	err := withPrincipal(domain.Principal{SubjectID: 3, Role: domain.RoleRegistered}, handler.Checkout)(c)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPurchaseHandler_Check(t *testing.T) {
	e := newEcho()
	stub := &stubPurchaseService{
		ownsFn: func(ctx context.Context, actor domain.Principal, bookID int64) (bool, error) {
			return bookID == 7, nil
		},
	}
	handler := NewPurchaseHandler(stub)

	c, rec := jsonRequest(e, http.MethodGet, "/api/purchases/check/7", "")
	c.SetParamNames("bookId")
	c.SetParamValues("7")

	if err := withPrincipal(domain.Principal{SubjectID: 3, Role: domain.RoleRegistered}, handler.Check)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"owned\":true}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
