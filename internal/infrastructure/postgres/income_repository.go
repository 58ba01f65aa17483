package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bolso/internal/domain/income"
)

type IncomeRepository struct {
	db *DB
}

func NewIncomeRepository(db *DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(ctx context.Context, params income.CreateParams) (*income.FixedIncome, error) {
	query := `
		INSERT INTO fixed_incomes (id, description, amount, due_day, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, description, amount, due_day, category, created_at
	`

	var in income.FixedIncome
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Description, params.Amount, params.DueDay, params.Category,
	).Scan(&in.ID, &in.Description, &in.Amount, &in.DueDay, &in.Category, &in.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create fixed income: %w", err)
	}

	return &in, nil
}

func (r *IncomeRepository) List(ctx context.Context) ([]*income.FixedIncome, error) {
	query := `
		SELECT id, description, amount, due_day, category, created_at
		FROM fixed_incomes
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixed incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*income.FixedIncome
	for rows.Next() {
		var in income.FixedIncome
		if err := rows.Scan(&in.ID, &in.Description, &in.Amount, &in.DueDay, &in.Category, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fixed income: %w", err)
		}
		incomes = append(incomes, &in)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fixed incomes: %w", err)
	}

	return incomes, nil
}

func (r *IncomeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fixed_incomes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fixed income: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return income.ErrIncomeNotFound
	}

	return nil
}
