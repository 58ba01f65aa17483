// Package freelance tracks freelance projects and their expenses:
// project status, received vs pending income, and net result.
package freelance

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Project status values
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusPending    = "PENDING"
)

var projectStatuses = map[string]struct{}{
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusPending:    {},
}

// Domain errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrExpenseNotFound = errors.New("project expense not found")
	ErrInvalidStatus   = errors.New("invalid project status")
)

// IsValidStatus checks if the provided status is valid
func IsValidStatus(s string) bool {
	_, ok := projectStatuses[s]
	return ok
}

// Project is a freelance engagement. Dates use the internal YYYY-MM-DD form.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Client       string    `json:"client"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	StartDate    string    `json:"startDate"`
	DeliveryDate string    `json:"deliveryDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Expense is a cost incurred while working, optionally tied to a project.
type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	ProjectID   *string   `json:"projectId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateProjectParams contains parameters for creating a project
type CreateProjectParams struct {
	Name         string
	Client       string
	Amount       float64
	Status       string
	StartDate    string
	DeliveryDate string
}

// Normalize applies defaults and floors the amount at zero.
func (p *CreateProjectParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Client = strings.TrimSpace(p.Client)
	if p.Amount < 0 {
		p.Amount = 0
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
}

// Validate validates the create parameters
func (p CreateProjectParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("project name is required")
	}
	if !IsValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// CreateExpenseParams contains parameters for creating a project expense
type CreateExpenseParams struct {
	Description string
	Amount      float64
	Date        string
	ProjectID   *string
}

// Validate validates the create parameters
func (p CreateExpenseParams) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("expense description is required")
	}
	if p.Amount < 0 {
		return errors.New("expense amount must be >= 0")
	}
	return nil
}

// ProjectRepository defines the persistence operations for projects
type ProjectRepository interface {
	Create(ctx context.Context, params CreateProjectParams) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// ExpenseRepository defines the persistence operations for project expenses
type ExpenseRepository interface {
	Create(ctx context.Context, params CreateExpenseParams) (*Expense, error)
	List(ctx context.Context) ([]*Expense, error)
	Delete(ctx context.Context, id string) error
}

// Summary aggregates the freelance position: received sums completed
// projects, pending sums the rest, net is received minus expenses.
type Summary struct {
	Received float64 `json:"received"`
	Pending  float64 `json:"pending"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// Summarize computes the freelance summary from the current snapshot.
func Summarize(projects []*Project, expenses []*Expense) Summary {
	var s Summary
	for _, p := range projects {
		if p.Status == StatusCompleted {
			s.Received += p.Amount
		} else {
			s.Pending += p.Amount
		}
	}
	for _, e := range expenses {
		s.Expenses += e.Amount
	}
	s.Net = s.Received - s.Expenses
	return s
}
