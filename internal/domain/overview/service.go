// Package overview assembles the cross-domain dashboard figures.
package overview

import (
	"context"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
	"bolso/internal/domain/expense"
	"bolso/internal/domain/income"
	"bolso/internal/domain/savings"
)

// Overview is the dashboard summary across all financial modules.
// CardMonthlyShare is the sum of every purchase's per-installment amount:
// the slice of installment debt a typical month carries.
type Overview struct {
	FixedIncomeTotal  float64 `json:"fixedIncomeTotal"`
	FixedExpenseTotal float64 `json:"fixedExpenseTotal"`
	CardMonthlyShare  float64 `json:"cardMonthlyShare"`
	MonthExpenses     float64 `json:"monthExpenses"`
	MonthBalance      float64 `json:"monthBalance"`
	SavingsDeposited  float64 `json:"savingsDeposited"`
	SavingsWithdrawn  float64 `json:"savingsWithdrawn"`
	SavingsBalance    float64 `json:"savingsBalance"`
}

// Service computes the overview from the current state of every repository.
type Service struct {
	incomes   income.Repository
	expenses  expense.Repository
	purchases card.PurchaseRepository
	savings   savings.Repository
}

// NewService creates a new overview service
func NewService(incomes income.Repository, expenses expense.Repository, purchases card.PurchaseRepository, sav savings.Repository) *Service {
	return &Service{incomes: incomes, expenses: expenses, purchases: purchases, savings: sav}
}

// Compute assembles the dashboard figures. Each domain is re-read and the
// aggregates re-derived in full; nothing is cached between calls.
func (s *Service) Compute(ctx context.Context) (*Overview, error) {
	incomes, err := s.incomes.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchases.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.savings.List(ctx)
	if err != nil {
		return nil, err
	}

	var cardShare float64
	for _, p := range purchases {
		cardShare += billing.InstallmentAmount(p)
	}

	var deposited, withdrawn float64
	for _, e := range entries {
		if e.Type == savings.TypeWithdrawal {
			withdrawn += e.Amount
		} else {
			deposited += e.Amount
		}
	}

	incomeTotal := income.Total(incomes)
	expenseTotal := expense.TotalActive(expenses)
	monthExpenses := expenseTotal + cardShare

	return &Overview{
		FixedIncomeTotal:  incomeTotal,
		FixedExpenseTotal: expenseTotal,
		CardMonthlyShare:  cardShare,
		MonthExpenses:     monthExpenses,
		MonthBalance:      incomeTotal - monthExpenses,
		SavingsDeposited:  deposited,
		SavingsWithdrawn:  withdrawn,
		SavingsBalance:    deposited - withdrawn,
	}, nil
}
