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

	"bolso/internal/domain/expense"
)

type ExpenseRepository struct {
	client *firestore.Client
}

func NewExpenseRepository(client *firestore.Client) *ExpenseRepository {
	return &ExpenseRepository{client: client}
}

func (r *ExpenseRepository) Create(ctx context.Context, params expense.CreateParams) (*expense.FixedExpense, error) {
	ref := r.client.Collection(colFixedExpenses).NewDoc()
	now := time.Now()

	_, err := ref.Create(ctx, map[string]any{
		"name":      params.Name,
		"amount":    params.Amount,
		"category":  params.Category,
		"dueDay":    params.DueDay,
		"active":    true,
		"createdAt": now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fixed expense: %w", err)
	}

	return &expense.FixedExpense{
		ID:        ref.ID,
		Name:      params.Name,
		Amount:    params.Amount,
		Category:  params.Category,
		DueDay:    params.DueDay,
		Active:    true,
		CreatedAt: now,
	}, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*expense.FixedExpense, error) {
	iter := r.client.Collection(colFixedExpenses).Documents(ctx)
	defer iter.Stop()

	var expenses []*expense.FixedExpense
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list fixed expenses: %w", err)
		}
		data := snap.Data()
		expenses = append(expenses, &expense.FixedExpense{
			ID:       snap.Ref.ID,
			Name:     asString(data["name"]),
			Amount:   asFloat(data["amount"]),
			Category: asString(data["category"]),
			DueDay:   asInt(data["dueDay"]),
			// Records written before the flag existed count as active.
			Active:    asBool(data["active"], true),
			CreatedAt: asTime(data["createdAt"]),
		})
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.Before(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (r *ExpenseRepository) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.client.Collection(colFixedExpenses).Doc(id).Update(ctx, []firestore.Update{
		{Path: "active", Value: active},
	})
	if status.Code(err) == codes.NotFound {
		return expense.ErrExpenseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update fixed expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colFixedExpenses).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return expense.ErrExpenseNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get fixed expense: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete fixed expense: %w", err)
	}
	return nil
}
