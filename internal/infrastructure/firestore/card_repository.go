package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bolso/internal/domain/card"
)

type CardRepository struct {
	client *firestore.Client
}

func NewCardRepository(client *firestore.Client) *CardRepository {
	return &CardRepository{client: client}
}

func (r *CardRepository) Create(ctx context.Context, params card.CreateCardParams) (*card.Card, error) {
	ref := r.client.Collection(colCards).NewDoc()
	now := time.Now()

	_, err := ref.Create(ctx, map[string]any{
		"name":            params.Name,
		"color":           params.Color,
		"limit":           params.Limit,
		"goodPurchaseDay": params.GoodPurchaseDay,
		"paymentDay":      params.PaymentDay,
		"createdAt":       now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return &card.Card{
		ID:              ref.ID,
		Name:            params.Name,
		Color:           params.Color,
		Limit:           params.Limit,
		GoodPurchaseDay: params.GoodPurchaseDay,
		PaymentDay:      params.PaymentDay,
		CreatedAt:       now,
	}, nil
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*card.Card, error) {
	snap, err := r.client.Collection(colCards).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, card.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return decodeCard(snap), nil
}

func (r *CardRepository) List(ctx context.Context) ([]*card.Card, error) {
	iter := r.client.Collection(colCards).Documents(ctx)
	defer iter.Stop()

	var cards []*card.Card
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list cards: %w", err)
		}
		cards = append(cards, decodeCard(snap))
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Name < cards[j].Name
	})
	return cards, nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colCards).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return card.ErrCardNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

func decodeCard(snap *firestore.DocumentSnapshot) *card.Card {
	data := snap.Data()
	return &card.Card{
		ID:              snap.Ref.ID,
		Name:            asString(data["name"]),
		Color:           asString(data["color"]),
		Limit:           asFloat(data["limit"]),
		GoodPurchaseDay: asInt(data["goodPurchaseDay"]),
		PaymentDay:      asInt(data["paymentDay"]),
		CreatedAt:       asTime(data["createdAt"]),
	}
}

type PurchaseRepository struct {
	client *firestore.Client
}

func NewPurchaseRepository(client *firestore.Client) *PurchaseRepository {
	return &PurchaseRepository{client: client}
}

func (r *PurchaseRepository) Create(ctx context.Context, params card.CreatePurchaseParams) (*card.Purchase, error) {
	ref := r.client.Collection(colPurchases).NewDoc()
	now := time.Now()

	_, err := ref.Create(ctx, map[string]any{
		"cardId":           params.CardID,
		"description":      params.Description,
		"amount":           params.Amount,
		"installments":     params.Installments,
		"purchaseDate":     params.PurchaseDate,
		"paidInstallments": []int{},
		"createdAt":        now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	return &card.Purchase{
		ID:               ref.ID,
		CardID:           params.CardID,
		Description:      params.Description,
		Amount:           params.Amount,
		Installments:     params.Installments,
		PurchaseDate:     params.PurchaseDate,
		PaidInstallments: []int{},
		CreatedAt:        now,
	}, nil
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*card.Purchase, error) {
	snap, err := r.client.Collection(colPurchases).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, card.ErrPurchaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return decodePurchase(snap), nil
}

func (r *PurchaseRepository) List(ctx context.Context) ([]*card.Purchase, error) {
	return r.list(ctx, r.client.Collection(colPurchases).Query)
}

// ListByCard filters in Firestore but sorts in memory, so the collection
// needs no composite index.
func (r *PurchaseRepository) ListByCard(ctx context.Context, cardID string) ([]*card.Purchase, error) {
	return r.list(ctx, r.client.Collection(colPurchases).Where("cardId", "==", cardID))
}

func (r *PurchaseRepository) list(ctx context.Context, q firestore.Query) ([]*card.Purchase, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var purchases []*card.Purchase
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list purchases: %w", err)
		}
		purchases = append(purchases, decodePurchase(snap))
	}

	sortPurchases(purchases)
	return purchases, nil
}

// sortPurchases orders by purchase date ascending, oldest first, with
// creation time breaking ties between same-day purchases. Dates are
// ISO strings so lexicographic order is chronological order.
func sortPurchases(purchases []*card.Purchase) {
	sort.SliceStable(purchases, func(i, j int) bool {
		if purchases[i].PurchaseDate != purchases[j].PurchaseDate {
			return purchases[i].PurchaseDate < purchases[j].PurchaseDate
		}
		return purchases[i].CreatedAt.Before(purchases[j].CreatedAt)
	})
}

func (r *PurchaseRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colPurchases).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return card.ErrPurchaseNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get purchase: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) DeleteByCard(ctx context.Context, cardID string) error {
	iter := r.client.Collection(colPurchases).Where("cardId", "==", cardID).Documents(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list purchases for card %s: %w", cardID, err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return fmt.Errorf("failed to delete purchase %s: %w", snap.Ref.ID, err)
		}
	}
	return nil
}

// AddPaidInstallment marks one installment as paid. ArrayUnion keeps the
// stored set free of duplicates without a read-modify-write cycle.
func (r *PurchaseRepository) AddPaidInstallment(ctx context.Context, id string, index int) error {
	_, err := r.client.Collection(colPurchases).Doc(id).Update(ctx, []firestore.Update{
		{Path: "paidInstallments", Value: firestore.ArrayUnion(index)},
	})
	if status.Code(err) == codes.NotFound {
		return card.ErrPurchaseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to mark installment paid: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) RemovePaidInstallment(ctx context.Context, id string, index int) error {
	_, err := r.client.Collection(colPurchases).Doc(id).Update(ctx, []firestore.Update{
		{Path: "paidInstallments", Value: firestore.ArrayRemove(index)},
	})
	if status.Code(err) == codes.NotFound {
		return card.ErrPurchaseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to mark installment unpaid: %w", err)
	}
	return nil
}

func decodePurchase(snap *firestore.DocumentSnapshot) *card.Purchase {
	data := snap.Data()
	return &card.Purchase{
		ID:               snap.Ref.ID,
		CardID:           asString(data["cardId"]),
		Description:      asString(data["description"]),
		Amount:           asFloat(data["amount"]),
		Installments:     asInt(data["installments"]),
		PurchaseDate:     asString(data["purchaseDate"]),
		PaidInstallments: asIntSlice(data["paidInstallments"]),
		CreatedAt:        asTime(data["createdAt"]),
	}
}
