// Package income tracks fixed monthly income entries (salary, rents,
// recurring payments) and their monthly total.
package income

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrIncomeNotFound = errors.New("income not found")

const DefaultCategory = "Outros"

// FixedIncome is a recurring monthly income entry.
type FixedIncome struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	DueDay      int       `json:"dueDay"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a fixed income entry
type CreateParams struct {
	Description string
	Amount      float64
	DueDay      int
	Category    string
}

// Normalize applies defaults and clamps values into valid ranges.
func (p *CreateParams) Normalize() {
	p.Description = strings.TrimSpace(p.Description)
	if p.Amount < 0 {
		p.Amount = 0
	}
	if p.DueDay < 1 {
		p.DueDay = 1
	}
	if p.DueDay > 31 {
		p.DueDay = 31
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("income description is required")
	}
	return nil
}

// Repository defines the persistence operations for fixed incomes
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*FixedIncome, error)
	List(ctx context.Context) ([]*FixedIncome, error)
	Delete(ctx context.Context, id string) error
}

// Total sums all fixed income amounts for one month.
func Total(incomes []*FixedIncome) float64 {
	var total float64
	for _, in := range incomes {
		total += in.Amount
	}
	return total
}
