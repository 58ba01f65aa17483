package billing

import (
	"testing"

	"bolso/internal/domain/card"
)

func TestNearingCompletion_Boundaries(t *testing.T) {
	tests := []struct {
		name         string
		installments int
		paid         []int
		wantIncluded bool
		wantRemain   int
	}{
		{"two remaining included", 4, []int{1, 2}, true, 2},
		{"one remaining included", 4, []int{1, 2, 3}, true, 1},
		{"three remaining excluded", 4, []int{1}, false, 0},
		{"fully paid excluded", 4, []int{1, 2, 3, 4}, false, 0},
		{"single installment always excluded", 1, nil, false, 0},
		{"single installment excluded even unpaid", 1, []int{}, false, 0},
		{"invalid paid indices do not count", 4, []int{1, 2, 99, 0}, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			purchases := []*card.Purchase{{
				ID:               "p1",
				Installments:     tt.installments,
				Amount:           100,
				PaidInstallments: tt.paid,
			}}
			got := NearingCompletion(purchases)
			if tt.wantIncluded {
				if len(got) != 1 {
					t.Fatalf("len = %d, want 1", len(got))
				}
				if got[0].Remaining != tt.wantRemain {
					t.Errorf("Remaining = %d, want %d", got[0].Remaining, tt.wantRemain)
				}
			} else if len(got) != 0 {
				t.Errorf("len = %d, want 0", len(got))
			}
		})
	}
}

func TestNearingCompletion_SortedByRemainingAscending(t *testing.T) {
	purchases := []*card.Purchase{
		{ID: "two-left", Installments: 5, PaidInstallments: []int{1, 2, 3}},
		{ID: "one-left", Installments: 3, PaidInstallments: []int{1, 2}},
		{ID: "also-two", Installments: 2, PaidInstallments: []int{}},
	}

	got := NearingCompletion(purchases)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Purchase.ID != "one-left" {
		t.Errorf("first alert = %s, want one-left", got[0].Purchase.ID)
	}
	// stable sort keeps input order among equal remaining counts
	if got[1].Purchase.ID != "two-left" || got[2].Purchase.ID != "also-two" {
		t.Errorf("tie order = %s, %s; want two-left, also-two", got[1].Purchase.ID, got[2].Purchase.ID)
	}
}
