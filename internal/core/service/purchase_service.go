package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/99minutos/library-system/internal/core/domain"
	"github.com/99minutos/library-system/internal/core/ports"
)

// maxCartSize bounds a single checkout.
const maxCartSize = 50

// PurchaseService implements purchases and the admin sales view.
type PurchaseService struct {
	repo  ports.PurchaseRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewPurchaseService(repo ports.PurchaseRepository, audit ports.AuditRecorder, log zerolog.Logger) *PurchaseService {
	return &PurchaseService{repo: repo, audit: audit, log: log}
}

// Checkout buys every book in the cart. Duplicate ids in the cart are
// collapsed; books the user already owns are skipped, not charged twice.
func (s *PurchaseService) Checkout(ctx context.Context, actor domain.Principal, bookIDs []int64) (domain.CheckoutResult, error) {
	if len(bookIDs) == 0 {
		return domain.CheckoutResult{}, domain.NewValidationError("cart is empty")
	}
	seen := make(map[int64]struct{}, len(bookIDs))
	unique := make([]int64, 0, len(bookIDs))
	for _, id := range bookIDs {
		if id <= 0 {
			return domain.CheckoutResult{}, domain.NewValidationError("invalid book id %d", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) > maxCartSize {
		return domain.CheckoutResult{}, domain.NewValidationError("cart cannot hold more than %d books", maxCartSize)
	}

	result, err := s.repo.Checkout(ctx, actor.SubjectID, unique)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	s.log.Info().
		Int64("user_id", actor.SubjectID).
		Int("purchased", result.Purchased).
		Int("already_owned", result.AlreadyOwned).
		Msg("checkout completed")
	if result.Purchased > 0 {
		record(s.audit, domain.AuditEvent{
			ActorID:  actor.SubjectID,
			Action:   domain.AuditPurchase,
			Entity:   "user",
			EntityID: actor.SubjectID,
			Details:  map[string]string{"purchased": strconv.Itoa(result.Purchased)},
		})
	}
	return result, nil
}

func (s *PurchaseService) Library(ctx context.Context, actor domain.Principal) ([]domain.OwnedBook, error) {
	return s.repo.Owned(ctx, actor.SubjectID)
}

func (s *PurchaseService) Owns(ctx context.Context, actor domain.Principal, bookID int64) (bool, error) {
	return s.repo.Owns(ctx, actor.SubjectID, bookID)
}

func (s *PurchaseService) Sales(ctx context.Context, req domain.PageRequest) (domain.Page[domain.SaleRecord], error) {
	sales, total, err := s.repo.ListSales(ctx, req, domain.SalesPageSize)
	if err != nil {
		return domain.Page[domain.SaleRecord]{}, err
	}
	return domain.NewPage(sales, total, req, domain.SalesPageSize), nil
}
