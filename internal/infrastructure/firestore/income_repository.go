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

	"bolso/internal/domain/income"
)

type IncomeRepository struct {
	client *firestore.Client
}

func NewIncomeRepository(client *firestore.Client) *IncomeRepository {
	return &IncomeRepository{client: client}
}

func (r *IncomeRepository) Create(ctx context.Context, params income.CreateParams) (*income.FixedIncome, error) {
	ref := r.client.Collection(colFixedIncomes).NewDoc()
	now := time.Now()

	_, err := ref.Create(ctx, map[string]any{
		"description": params.Description,
		"amount":      params.Amount,
		"dueDay":      params.DueDay,
		"category":    params.Category,
		"createdAt":   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fixed income: %w", err)
	}

	return &income.FixedIncome{
		ID:          ref.ID,
		Description: params.Description,
		Amount:      params.Amount,
		DueDay:      params.DueDay,
		Category:    params.Category,
		CreatedAt:   now,
	}, nil
}

func (r *IncomeRepository) List(ctx context.Context) ([]*income.FixedIncome, error) {
	iter := r.client.Collection(colFixedIncomes).Documents(ctx)
	defer iter.Stop()

	var incomes []*income.FixedIncome
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list fixed incomes: %w", err)
		}
		data := snap.Data()
		incomes = append(incomes, &income.FixedIncome{
			ID:          snap.Ref.ID,
			Description: asString(data["description"]),
			Amount:      asFloat(data["amount"]),
			DueDay:      asInt(data["dueDay"]),
			Category:    asString(data["category"]),
			CreatedAt:   asTime(data["createdAt"]),
		})
	}

	sort.SliceStable(incomes, func(i, j int) bool {
		return incomes[i].CreatedAt.Before(incomes[j].CreatedAt)
	})
	return incomes, nil
}

func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colFixedIncomes).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return income.ErrIncomeNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get fixed income: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete fixed income: %w", err)
	}
	return nil
}
