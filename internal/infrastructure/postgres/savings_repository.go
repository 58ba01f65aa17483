package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"bolso/internal/domain/savings"
)

type SavingsRepository struct {
	db *DB
}

func NewSavingsRepository(db *DB) *SavingsRepository {
	return &SavingsRepository{db: db}
}

func (r *SavingsRepository) Create(ctx context.Context, params savings.CreateParams) (*savings.Entry, error) {
	query := `
		INSERT INTO savings_entries (id, entry_type, amount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, entry_type, amount, description, created_at
	`

	var e savings.Entry
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Type, params.Amount, params.Description,
	).Scan(&e.ID, &e.Type, &e.Amount, &e.Description, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create savings entry: %w", err)
	}

	return &e, nil
}

func (r *SavingsRepository) List(ctx context.Context) ([]*savings.Entry, error) {
	query := `
		SELECT id, entry_type, amount, description, created_at
		FROM savings_entries
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings entries: %w", err)
	}
	defer rows.Close()

	var entries []*savings.Entry
	for rows.Next() {
		var e savings.Entry
		if err := rows.Scan(&e.ID, &e.Type, &e.Amount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings entries: %w", err)
	}

	return entries, nil
}

func (r *SavingsRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM savings_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete savings entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return savings.ErrEntryNotFound
	}

	return nil
}

// GetGoal reads the singleton config row; a missing row reads as a zero goal.
func (r *SavingsRepository) GetGoal(ctx context.Context) (*savings.Goal, error) {
	var goal savings.Goal
	err := r.db.QueryRowContext(ctx, `SELECT monthly_goal FROM savings_config WHERE id = 1`).Scan(&goal.MonthlyGoal)
	if err == sql.ErrNoRows {
		return &savings.Goal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal: %w", err)
	}
	return &goal, nil
}

func (r *SavingsRepository) SetGoal(ctx context.Context, monthlyGoal float64) error {
	query := `
		INSERT INTO savings_config (id, monthly_goal)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET
		    monthly_goal = EXCLUDED.monthly_goal,
		    updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, monthlyGoal); err != nil {
		return fmt.Errorf("failed to set savings goal: %w", err)
	}
	return nil
}
