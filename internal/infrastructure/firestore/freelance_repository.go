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

	"bolso/internal/domain/freelance"
)

type FreelanceProjectRepository struct {
	client *firestore.Client
}

func NewFreelanceProjectRepository(client *firestore.Client) *FreelanceProjectRepository {
	return &FreelanceProjectRepository{client: client}
}

func (r *FreelanceProjectRepository) Create(ctx context.Context, params freelance.CreateProjectParams) (*freelance.Project, error) {
	ref := r.client.Collection(colFreelanceProj).NewDoc()
	now := time.Now()

	_, err := ref.Create(ctx, map[string]any{
		"name":         params.Name,
		"client":       params.Client,
		"amount":       params.Amount,
		"status":       params.Status,
		"startDate":    params.StartDate,
		"deliveryDate": params.DeliveryDate,
		"createdAt":    now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create freelance project: %w", err)
	}

	return &freelance.Project{
		ID:           ref.ID,
		Name:         params.Name,
		Client:       params.Client,
		Amount:       params.Amount,
		Status:       params.Status,
		StartDate:    params.StartDate,
		DeliveryDate: params.DeliveryDate,
		CreatedAt:    now,
	}, nil
}

func (r *FreelanceProjectRepository) List(ctx context.Context) ([]*freelance.Project, error) {
	iter := r.client.Collection(colFreelanceProj).Documents(ctx)
	defer iter.Stop()

	var projects []*freelance.Project
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list freelance projects: %w", err)
		}
		data := snap.Data()
		projects = append(projects, &freelance.Project{
			ID:           snap.Ref.ID,
			Name:         asString(data["name"]),
			Client:       asString(data["client"]),
			Amount:       asFloat(data["amount"]),
			Status:       asString(data["status"]),
			StartDate:    asString(data["startDate"]),
			DeliveryDate: asString(data["deliveryDate"]),
			CreatedAt:    asTime(data["createdAt"]),
		})
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *FreelanceProjectRepository) UpdateStatus(ctx context.Context, id, projectStatus string) error {
	_, err := r.client.Collection(colFreelanceProj).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: projectStatus},
	})
	if status.Code(err) == codes.NotFound {
		return freelance.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return nil
}

func (r *FreelanceProjectRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colFreelanceProj).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return freelance.ErrProjectNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get freelance project: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete freelance project: %w", err)
	}
	return nil
}

type FreelanceExpenseRepository struct {
	client *firestore.Client
}

func NewFreelanceExpenseRepository(client *firestore.Client) *FreelanceExpenseRepository {
	return &FreelanceExpenseRepository{client: client}
}

func (r *FreelanceExpenseRepository) Create(ctx context.Context, params freelance.CreateExpenseParams) (*freelance.Expense, error) {
	ref := r.client.Collection(colFreelanceExpense).NewDoc()
	now := time.Now()

	data := map[string]any{
		"description": params.Description,
		"amount":      params.Amount,
		"date":        params.Date,
		"createdAt":   now,
	}
	if params.ProjectID != nil {
		data["projectId"] = *params.ProjectID
	}

	if _, err := ref.Create(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to create freelance expense: %w", err)
	}

	return &freelance.Expense{
		ID:          ref.ID,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        params.Date,
		ProjectID:   params.ProjectID,
		CreatedAt:   now,
	}, nil
}

func (r *FreelanceExpenseRepository) List(ctx context.Context) ([]*freelance.Expense, error) {
	iter := r.client.Collection(colFreelanceExpense).Documents(ctx)
	defer iter.Stop()

	var expenses []*freelance.Expense
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list freelance expenses: %w", err)
		}
		data := snap.Data()
		expenses = append(expenses, &freelance.Expense{
			ID:          snap.Ref.ID,
			Description: asString(data["description"]),
			Amount:      asFloat(data["amount"]),
			Date:        asString(data["date"]),
			ProjectID:   asStringPtr(data["projectId"]),
			CreatedAt:   asTime(data["createdAt"]),
		})
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

func (r *FreelanceExpenseRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(colFreelanceExpense).Doc(id)
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return freelance.ErrExpenseNotFound
	} else if err != nil {
		return fmt.Errorf("failed to get freelance expense: %w", err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete freelance expense: %w", err)
	}
	return nil
}
