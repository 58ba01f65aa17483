package freelance

import (
	"errors"
	"testing"
)

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{StatusInProgress, true},
		{StatusCompleted, true},
		{StatusPending, true},
		{"DONE", false},
		{"completed", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidStatus(tt.input); got != tt.want {
				t.Errorf("IsValidStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	projects := []*Project{
		{Name: "Site", Amount: 3000, Status: StatusCompleted},
		{Name: "App", Amount: 5000, Status: StatusInProgress},
		{Name: "Logo", Amount: 800, Status: StatusPending},
		{Name: "API", Amount: 1200, Status: StatusCompleted},
	}
	expenses := []*Expense{
		{Description: "Hospedagem", Amount: 150},
		{Description: "Fonte", Amount: 50},
	}

	got := Summarize(projects, expenses)
	if got.Received != 4200 {
		t.Errorf("Received = %v, want 4200", got.Received)
	}
	if got.Pending != 5800 {
		t.Errorf("Pending = %v, want 5800", got.Pending)
	}
	if got.Expenses != 200 {
		t.Errorf("Expenses = %v, want 200", got.Expenses)
	}
	if got.Net != 4000 {
		t.Errorf("Net = %v, want 4000", got.Net)
	}
}

func TestCreateProjectParams_Validate(t *testing.T) {
	p := CreateProjectParams{Name: "Site", Status: "INVALID"}
	if err := p.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}

	p.Normalize()
	// Normalize does not touch an explicit (even invalid) status
	if p.Status != "INVALID" {
		t.Errorf("Normalize rewrote status to %q", p.Status)
	}

	empty := CreateProjectParams{Name: "Site"}
	empty.Normalize()
	if empty.Status != StatusPending {
		t.Errorf("default status = %q, want pending", empty.Status)
	}
	if err := empty.Validate(); err != nil {
		t.Errorf("normalized params rejected: %v", err)
	}
}

func TestCreateExpenseParams_Validate(t *testing.T) {
	if err := (CreateExpenseParams{Description: "Host", Amount: 10}).Validate(); err != nil {
		t.Errorf("valid params rejected: %v", err)
	}
	if err := (CreateExpenseParams{Description: "", Amount: 10}).Validate(); err == nil {
		t.Error("blank description accepted")
	}
	if err := (CreateExpenseParams{Description: "X", Amount: -1}).Validate(); err == nil {
		t.Error("negative amount accepted")
	}
}
