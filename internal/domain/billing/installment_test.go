package billing

import (
	"math"
	"testing"
	"time"

	"bolso/internal/domain/card"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestInstallmentAmount_UniformSplit(t *testing.T) {
	p := &card.Purchase{Amount: 300, Installments: 3}
	if got := InstallmentAmount(p); !almostEqual(got, 100) {
		t.Errorf("InstallmentAmount = %v, want 100", got)
	}
}

func TestInstallmentAmount_CountBelowOneTreatedAsOne(t *testing.T) {
	for _, n := range []int{0, -3} {
		p := &card.Purchase{Amount: 250, Installments: n}
		if got := InstallmentAmount(p); !almostEqual(got, 250) {
			t.Errorf("Installments=%d: InstallmentAmount = %v, want 250", n, got)
		}
	}
}

func TestExpand_AmountConservation(t *testing.T) {
	tests := []struct {
		amount       float64
		installments int
	}{
		{300, 3},
		{100, 3}, // non-terminating split, conserved within float tolerance
		{999.99, 12},
		{50, 1},
	}

	for _, tt := range tests {
		p := &card.Purchase{Amount: tt.amount, Installments: tt.installments, PurchaseDate: "2024-03-15"}
		var sum float64
		for _, inst := range Expand(p, 10) {
			sum += inst.Amount
		}
		if math.Abs(sum-tt.amount) > 1e-6 {
			t.Errorf("amount=%v installments=%d: expanded sum %v", tt.amount, tt.installments, sum)
		}
	}
}

func TestExpand_LengthAndSchedule(t *testing.T) {
	p := &card.Purchase{Amount: 300, Installments: 3, PurchaseDate: "2024-03-15"}
	out := Expand(p, 10)
	if len(out) != 3 {
		t.Fatalf("len(Expand) = %d, want 3", len(out))
	}

	wantDue := []time.Time{
		date(2024, time.April, 10),
		date(2024, time.May, 10),
		date(2024, time.June, 10),
	}
	for i, inst := range out {
		if inst.Index != i+1 {
			t.Errorf("entry %d: index = %d", i, inst.Index)
		}
		if !inst.DueDate.Equal(wantDue[i]) {
			t.Errorf("entry %d: due %v, want %v", i, inst.DueDate, wantDue[i])
		}
		if !almostEqual(inst.Amount, 100) {
			t.Errorf("entry %d: amount %v, want 100", i, inst.Amount)
		}
	}
}

func TestExpand_PaidFlags(t *testing.T) {
	p := &card.Purchase{
		Amount:           300,
		Installments:     3,
		PurchaseDate:     "2024-03-15",
		PaidInstallments: []int{1, 3},
	}
	out := Expand(p, 10)
	wantPaid := []bool{true, false, true}
	for i, inst := range out {
		if inst.Paid != wantPaid[i] {
			t.Errorf("installment %d: paid = %v, want %v", inst.Index, inst.Paid, wantPaid[i])
		}
	}
}

func TestPaidSet_FiltersAndDeduplicates(t *testing.T) {
	p := &card.Purchase{
		Amount:           400,
		Installments:     4,
		PaidInstallments: []int{0, 1, 1, 2, 5, -3, 99},
	}
	set := PaidSet(p)
	if len(set) != 2 {
		t.Fatalf("len(PaidSet) = %d, want 2 (valid indices 1 and 2)", len(set))
	}
	for _, idx := range []int{1, 2} {
		if _, ok := set[idx]; !ok {
			t.Errorf("index %d missing from paid set", idx)
		}
	}
	if got := PaidCount(p); got != 2 {
		t.Errorf("PaidCount = %d, want 2", got)
	}
}

func TestPurchaseDate_FallsBackToToday(t *testing.T) {
	p := &card.Purchase{PurchaseDate: "garbage"}
	got := PurchaseDate(p)
	now := time.Now()
	if got.Year() != now.Year() || got.Month() != now.Month() || got.Day() != now.Day() {
		t.Errorf("malformed date resolved to %v, want today", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("fallback date carries a time component: %v", got)
	}
}
