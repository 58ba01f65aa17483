package savings

import (
	"math"
	"testing"
	"time"
)

func entry(typ string, amount float64, year int, month time.Month) *Entry {
	return &Entry{Type: typ, Amount: amount, CreatedAt: time.Date(year, month, 15, 12, 0, 0, 0, time.Local)}
}

func TestBalance(t *testing.T) {
	entries := []*Entry{
		entry(TypeDeposit, 500, 2024, time.March),
		entry(TypeDeposit, 300, 2024, time.April),
		entry(TypeWithdrawal, 200, 2024, time.April),
	}
	if got := Balance(entries); got != 600 {
		t.Errorf("Balance = %v, want 600", got)
	}
}

func TestGoalProgress(t *testing.T) {
	entries := []*Entry{entry(TypeDeposit, 750, 2024, time.March)}

	got := GoalProgress(entries, Goal{MonthlyGoal: 1000})
	if got.Saved != 750 || got.Percent != 75 || got.Remaining != 250 || got.Achieved {
		t.Errorf("GoalProgress = %+v", got)
	}

	achieved := GoalProgress([]*Entry{entry(TypeDeposit, 1200, 2024, time.March)}, Goal{MonthlyGoal: 1000})
	if !achieved.Achieved || achieved.Remaining != 0 {
		t.Errorf("over-goal progress = %+v", achieved)
	}
	if math.Abs(achieved.Percent-120) > 1e-9 {
		t.Errorf("Percent = %v, want 120 (uncapped)", achieved.Percent)
	}

	zeroGoal := GoalProgress(entries, Goal{})
	if zeroGoal.Percent != 0 || zeroGoal.Achieved {
		t.Errorf("zero-goal progress = %+v", zeroGoal)
	}
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2024, time.June, 20, 0, 0, 0, 0, time.Local)
	entries := []*Entry{
		entry(TypeDeposit, 100, 2024, time.April),
		entry(TypeDeposit, 50, 2024, time.May),
		entry(TypeWithdrawal, 30, 2024, time.May),
		entry(TypeDeposit, 20, 2024, time.June),
		entry(TypeDeposit, 999, 2023, time.December), // outside the window
	}

	series := MonthlySeries(entries, now, 3)
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3", len(series))
	}

	if series[0].Month != "2024-04" || series[1].Month != "2024-05" || series[2].Month != "2024-06" {
		t.Fatalf("months = %v %v %v", series[0].Month, series[1].Month, series[2].Month)
	}
	if series[0].Net != 100 {
		t.Errorf("April net = %v, want 100", series[0].Net)
	}
	if series[1].Deposited != 50 || series[1].Withdrawn != 30 || series[1].Net != 20 {
		t.Errorf("May = %+v", series[1])
	}
	if series[2].Net != 20 {
		t.Errorf("June net = %v, want 20", series[2].Net)
	}
}

func TestCreateParams_Normalize(t *testing.T) {
	p := CreateParams{Type: "whatever", Amount: 10}
	p.Normalize()
	if p.Type != TypeDeposit {
		t.Errorf("unknown type coerced to %q, want deposit", p.Type)
	}

	w := CreateParams{Type: TypeWithdrawal, Amount: 10}
	w.Normalize()
	if w.Type != TypeWithdrawal {
		t.Errorf("withdrawal coerced to %q", w.Type)
	}
}
