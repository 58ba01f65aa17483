// Package expense tracks fixed monthly expenses (rent, subscriptions,
// utilities) with category buckets and due-day calendar views.
package expense

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrExpenseNotFound = errors.New("expense not found")

const DefaultCategory = "outros"

// FixedExpense is a recurring monthly expense. Inactive expenses stay
// listed but are excluded from totals and calendar views.
type FixedExpense struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	DueDay    int       `json:"dueDay"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a fixed expense
type CreateParams struct {
	Name     string
	Amount   float64
	Category string
	DueDay   int
}

// Normalize applies defaults and clamps values into valid ranges.
func (p *CreateParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
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
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("expense name is required")
	}
	return nil
}

// Repository defines the persistence operations for fixed expenses
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*FixedExpense, error)
	List(ctx context.Context) ([]*FixedExpense, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// TotalActive sums the amounts of active expenses.
func TotalActive(expenses []*FixedExpense) float64 {
	var total float64
	for _, e := range expenses {
		if e.Active {
			total += e.Amount
		}
	}
	return total
}

// TotalsByCategory buckets active expense amounts per category.
func TotalsByCategory(expenses []*FixedExpense) map[string]float64 {
	buckets := make(map[string]float64)
	for _, e := range expenses {
		if e.Active {
			buckets[e.Category] += e.Amount
		}
	}
	return buckets
}

// UpcomingWithin returns active expenses due between today and today+window
// (day-of-month window, no month rollover), sorted by due day.
func UpcomingWithin(expenses []*FixedExpense, today, window int) []*FixedExpense {
	var out []*FixedExpense
	for _, e := range expenses {
		if e.Active && e.DueDay >= today && e.DueDay <= today+window {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDay < out[j].DueDay })
	return out
}

// CalendarOrder returns active expenses sorted by due day for the monthly
// calendar view.
func CalendarOrder(expenses []*FixedExpense) []*FixedExpense {
	var out []*FixedExpense
	for _, e := range expenses {
		if e.Active {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDay < out[j].DueDay })
	return out
}
