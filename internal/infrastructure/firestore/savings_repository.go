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

	"bolso/internal/domain/savings"
)

type SavingsRepository struct {
	client *firestore.Client
}

func NewSavingsRepository(client *firestore.Client) *SavingsRepository {
	return &SavingsRepository{client: client}
}

func (r *SavingsRepository) Create(ctx context.Context, params savings.CreateParams) (*savings.Entry, error) {
	ref := r.client.Collection(colSavingsEntries).NewDoc()
	now := time.Now()

	_, err := ref.Create(ctx, map[string]any{
		"type":        params.Type,
		"amount":      params.Amount,
		"description": params.Description,
		"createdAt":   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create savings entry: %w", err)
	}

	return &savings.Entry{
		ID:          ref.ID,
		Type:        params.Type,
		Amount:      params.Amount,
		Description: params.Description,
		CreatedAt:   now,
	}, nil
}

func (r *SavingsRepository) List(ctx context.Context) ([]*savings.Entry, error) {
	iter := r.client.Collection(colSavingsEntries).Documents(ctx)
	defer iter.Stop()

	var entries []*savings.Entry
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list savings entries: %w", err)
		}
		data := snap.Data()
		entries = append(entries, &savings.Entry{
			ID:          snap.Ref.ID,
			Type:        asString(data["type"]),
			Amount:      asFloat(data["amount"]),
			Description: asString(data["description"]),
			CreatedAt:   asTime(data["createdAt"]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *SavingsRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colSavingsEntries).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return savings.ErrEntryNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get savings entry: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete savings entry: %w", err)
	}
	return nil
}

// GetGoal reads the singleton goal document; a missing document reads as a
// zero goal rather than an error.
func (r *SavingsRepository) GetGoal(ctx context.Context) (*savings.Goal, error) {
	snap, err := r.client.Collection(colSavingsConfig).Doc(savingsConfigDoc).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return &savings.Goal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal: %w", err)
	}
	return &savings.Goal{MonthlyGoal: asFloat(snap.Data()["monthlyGoal"])}, nil
}

func (r *SavingsRepository) SetGoal(ctx context.Context, monthlyGoal float64) error {
	_, err := r.client.Collection(colSavingsConfig).Doc(savingsConfigDoc).Set(ctx, map[string]any{
		"monthlyGoal": monthlyGoal,
		"updatedAt":   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to set savings goal: %w", err)
	}
	return nil
}
