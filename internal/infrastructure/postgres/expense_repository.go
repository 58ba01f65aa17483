package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bolso/internal/domain/expense"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, params expense.CreateParams) (*expense.FixedExpense, error) {
	query := `
		INSERT INTO fixed_expenses (id, name, amount, category, due_day, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, name, amount, category, due_day, active, created_at
	`

	var e expense.FixedExpense
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Name, params.Amount, params.Category, params.DueDay,
	).Scan(&e.ID, &e.Name, &e.Amount, &e.Category, &e.DueDay, &e.Active, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create fixed expense: %w", err)
	}

	return &e, nil
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*expense.FixedExpense, error) {
	query := `
		SELECT id, name, amount, category, due_day, active, created_at
		FROM fixed_expenses
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.FixedExpense
	for rows.Next() {
		var e expense.FixedExpense
		if err := rows.Scan(&e.ID, &e.Name, &e.Amount, &e.Category, &e.DueDay, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fixed expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed expenses: %w", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) SetActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE fixed_expenses SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update fixed expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fixed_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fixed expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}
