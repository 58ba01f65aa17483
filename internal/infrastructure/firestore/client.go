// Package firestore implements the domain repositories on Cloud Firestore.
// It is the primary backend: document IDs are Firestore-generated, arrays
// are mutated server-side, and change feeds come from snapshot listeners.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Collection names
const (
	colCards            = "cards"
	colPurchases        = "card_purchases"
	colFixedIncomes     = "fixed_incomes"
	colFixedExpenses    = "fixed_expenses"
	colFreelanceProj    = "freelance_projects"
	colFreelanceExpense = "freelance_expenses"
	colSavingsEntries   = "savings_entries"
	colSavingsConfig    = "savings_config"

	savingsConfigDoc = "main"
)

// NewClient initializes a Firebase app and returns its Firestore client.
func NewClient(ctx context.Context, credentialsFile string) (*firestore.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore client: %w", err)
	}

	return client, nil
}
