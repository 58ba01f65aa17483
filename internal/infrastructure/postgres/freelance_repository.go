package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bolso/internal/domain/freelance"
)

type FreelanceProjectRepository struct {
	db *DB
}

func NewFreelanceProjectRepository(db *DB) *FreelanceProjectRepository {
	return &FreelanceProjectRepository{db: db}
}

func (r *FreelanceProjectRepository) Create(ctx context.Context, params freelance.CreateProjectParams) (*freelance.Project, error) {
	query := `
		INSERT INTO freelance_projects (id, name, client, amount, status, start_date, delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, client, amount, status, start_date, delivery_date, created_at
	`

	var p freelance.Project
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Name, params.Client, params.Amount,
		params.Status, params.StartDate, params.DeliveryDate,
	).Scan(&p.ID, &p.Name, &p.Client, &p.Amount, &p.Status, &p.StartDate, &p.DeliveryDate, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create freelance project: %w", err)
	}

	return &p, nil
}

func (r *FreelanceProjectRepository) List(ctx context.Context) ([]*freelance.Project, error) {
	query := `
		SELECT id, name, client, amount, status, start_date, delivery_date, created_at
		FROM freelance_projects
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list freelance projects: %w", err)
	}
	defer rows.Close()

	var projects []*freelance.Project
	for rows.Next() {
		var p freelance.Project
		err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Amount, &p.Status, &p.StartDate, &p.DeliveryDate, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freelance project: %w", err)
		}
		projects = append(projects, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating freelance projects: %w", err)
	}

	return projects, nil
}

func (r *FreelanceProjectRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE freelance_projects SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return freelance.ErrProjectNotFound
	}

	return nil
}

func (r *FreelanceProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM freelance_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete freelance project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return freelance.ErrProjectNotFound
	}

	return nil
}

type FreelanceExpenseRepository struct {
	db *DB
}

func NewFreelanceExpenseRepository(db *DB) *FreelanceExpenseRepository {
	return &FreelanceExpenseRepository{db: db}
}

func (r *FreelanceExpenseRepository) Create(ctx context.Context, params freelance.CreateExpenseParams) (*freelance.Expense, error) {
	query := `
		INSERT INTO freelance_expenses (id, description, amount, expense_date, project_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, description, amount, expense_date, project_id, created_at
	`

	var e freelance.Expense
	var projectID sql.NullString
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Description, params.Amount, params.Date, params.ProjectID,
	).Scan(&e.ID, &e.Description, &e.Amount, &e.Date, &projectID, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create freelance expense: %w", err)
	}

	if projectID.Valid {
		e.ProjectID = &projectID.String
	}
	return &e, nil
}

func (r *FreelanceExpenseRepository) List(ctx context.Context) ([]*freelance.Expense, error) {
	query := `
		SELECT id, description, amount, expense_date, project_id, created_at
		FROM freelance_expenses
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list freelance expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*freelance.Expense
	for rows.Next() {
		var e freelance.Expense
		var projectID sql.NullString
		err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Date, &projectID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freelance expense: %w", err)
		}
		if projectID.Valid {
			id := projectID.String
			e.ProjectID = &id
		}
		expenses = append(expenses, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating freelance expenses: %w", err)
	}

	return expenses, nil
}

func (r *FreelanceExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM freelance_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete freelance expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return freelance.ErrExpenseNotFound
	}

	return nil
}
