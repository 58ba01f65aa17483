// Package savings tracks deposits and withdrawals against a monthly goal.
package savings

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"bolso/internal/domain/billing"
)

// Entry type values
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
)

var ErrEntryNotFound = errors.New("savings entry not found")

// Entry is a single savings movement.
type Entry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Goal holds the configured monthly savings target.
type Goal struct {
	MonthlyGoal float64 `json:"monthlyGoal"`
}

// CreateParams contains parameters for creating a savings entry
type CreateParams struct {
	Type        string
	Amount      float64
	Description string
}

// Normalize coerces the entry type (anything but a withdrawal is a deposit,
// matching how stored values are read) and floors the amount.
func (p *CreateParams) Normalize() {
	if p.Type != TypeWithdrawal {
		p.Type = TypeDeposit
	}
	if p.Amount < 0 {
		p.Amount = 0
	}
	p.Description = strings.TrimSpace(p.Description)
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Amount <= 0 {
		return errors.New("entry amount must be > 0")
	}
	return nil
}

// Repository defines the persistence operations for savings
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Entry, error)
	List(ctx context.Context) ([]*Entry, error)
	Delete(ctx context.Context, id string) error
	GetGoal(ctx context.Context) (*Goal, error)
	SetGoal(ctx context.Context, monthlyGoal float64) error
}

// Balance returns deposits minus withdrawals across all entries.
func Balance(entries []*Entry) float64 {
	var total float64
	for _, e := range entries {
		if e.Type == TypeWithdrawal {
			total -= e.Amount
		} else {
			total += e.Amount
		}
	}
	return total
}

// Progress describes how the saved balance compares to the goal.
type Progress struct {
	Saved     float64 `json:"saved"`
	Goal      float64 `json:"goal"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	Achieved  bool    `json:"achieved"`
}

// GoalProgress computes goal progress from the current entries. Percent is
// uncapped (saving past the goal reads over 100); Remaining floors at zero.
func GoalProgress(entries []*Entry, goal Goal) Progress {
	saved := Balance(entries)
	var pct float64
	if goal.MonthlyGoal > 0 {
		pct = saved / goal.MonthlyGoal * 100
	}
	return Progress{
		Saved:     saved,
		Goal:      goal.MonthlyGoal,
		Percent:   pct,
		Remaining: math.Max(0, goal.MonthlyGoal-saved),
		Achieved:  goal.MonthlyGoal > 0 && saved >= goal.MonthlyGoal,
	}
}

// MonthNet is one month of savings activity.
type MonthNet struct {
	Month     billing.MonthKey `json:"month"`
	Deposited float64          `json:"deposited"`
	Withdrawn float64          `json:"withdrawn"`
	Net       float64          `json:"net"`
}

// MonthlySeries buckets entries into the trailing months window ending at
// now's month, oldest first. Entries outside the window are dropped.
func MonthlySeries(entries []*Entry, now time.Time, months int) []MonthNet {
	if months < 1 {
		return nil
	}

	series := make([]MonthNet, months)
	index := make(map[billing.MonthKey]int, months)
	for i := 0; i < months; i++ {
		key := billing.MonthKeyFor(billing.AddMonthsClamped(now, i-(months-1), 1))
		series[i] = MonthNet{Month: key}
		index[key] = i
	}

	for _, e := range entries {
		i, ok := index[billing.MonthKeyFor(e.CreatedAt)]
		if !ok {
			continue
		}
		if e.Type == TypeWithdrawal {
			series[i].Withdrawn += e.Amount
		} else {
			series[i].Deposited += e.Amount
		}
	}
	for i := range series {
		series[i].Net = series[i].Deposited - series[i].Withdrawn
	}
	return series
}
