package card

import (
	"context"
	"fmt"
)

// Service contains the business logic for card and purchase operations
type Service struct {
	cards     Repository
	purchases PurchaseRepository
}

// NewService creates a new card service
func NewService(cards Repository, purchases PurchaseRepository) *Service {
	return &Service{cards: cards, purchases: purchases}
}

// CreateCard creates a new card after normalization and validation
func (s *Service) CreateCard(ctx context.Context, params CreateCardParams) (*Card, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.cards.Create(ctx, params)
}

// GetCard retrieves a card by ID
func (s *Service) GetCard(ctx context.Context, id string) (*Card, error) {
	return s.cards.GetByID(ctx, id)
}

// ListCards retrieves all cards ordered by name
func (s *Service) ListCards(ctx context.Context) ([]*Card, error) {
	return s.cards.List(ctx)
}

// DeleteCard deletes a card and all purchases belonging to it.
// Purchases go first so a failure never leaves orphans pointing at a
// deleted card.
func (s *Service) DeleteCard(ctx context.Context, id string) error {
	if _, err := s.cards.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.purchases.DeleteByCard(ctx, id); err != nil {
		return fmt.Errorf("failed to delete purchases for card %s: %w", id, err)
	}
	return s.cards.Delete(ctx, id)
}

// CreatePurchase creates a new purchase with an empty paid set
func (s *Service) CreatePurchase(ctx context.Context, params CreatePurchaseParams) (*Purchase, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.cards.GetByID(ctx, params.CardID); err != nil {
		return nil, err
	}
	return s.purchases.Create(ctx, params)
}

// GetPurchase retrieves a purchase by ID
func (s *Service) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	return s.purchases.GetByID(ctx, id)
}

// ListPurchases retrieves all purchases ordered by purchase date
func (s *Service) ListPurchases(ctx context.Context) ([]*Purchase, error) {
	return s.purchases.List(ctx)
}

// ListPurchasesByCard retrieves the purchases belonging to one card
func (s *Service) ListPurchasesByCard(ctx context.Context, cardID string) ([]*Purchase, error) {
	return s.purchases.ListByCard(ctx, cardID)
}

// DeletePurchase deletes a single purchase
func (s *Service) DeletePurchase(ctx context.Context, id string) error {
	return s.purchases.Delete(ctx, id)
}

// SetInstallmentPaid marks one installment of a purchase paid or unpaid by
// patching that single index into or out of the stored paid set. Toggling
// the same index twice is a no-op round trip.
func (s *Service) SetInstallmentPaid(ctx context.Context, purchaseID string, index int, paid bool) error {
	if index < 1 {
		return fmt.Errorf("%w: installment index must be >= 1", ErrInvalidInput)
	}
	if _, err := s.purchases.GetByID(ctx, purchaseID); err != nil {
		return err
	}
	if paid {
		return s.purchases.AddPaidInstallment(ctx, purchaseID, index)
	}
	return s.purchases.RemovePaidInstallment(ctx, purchaseID, index)
}
