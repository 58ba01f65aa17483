package billing

import (
	"time"

	"bolso/internal/domain/card"
)

// Installment is one scheduled sub-payment of a purchase.
type Installment struct {
	Index   int       `json:"index"`
	DueDate time.Time `json:"dueDate"`
	Amount  float64   `json:"amount"`
	Paid    bool      `json:"paid"`
}

// InstallmentCount returns the purchase's installment count clamped to >= 1,
// the value every computation divides by.
func InstallmentCount(p *card.Purchase) int {
	if p.Installments < 1 {
		return 1
	}
	return p.Installments
}

// InstallmentAmount returns the uniform per-installment amount. The split is
// straight division: the last installment is not adjusted for the rounding
// remainder, so many call sites can assume equal amounts.
func InstallmentAmount(p *card.Purchase) float64 {
	return p.Amount / float64(InstallmentCount(p))
}

// PaidSet returns the purchase's paid-installment set, deduplicated and
// filtered to the valid index range [1, installment count]. Stored data may
// carry duplicates or stale out-of-range indices; they never count.
func PaidSet(p *card.Purchase) map[int]struct{} {
	n := InstallmentCount(p)
	set := make(map[int]struct{}, len(p.PaidInstallments))
	for _, idx := range p.PaidInstallments {
		if idx >= 1 && idx <= n {
			set[idx] = struct{}{}
		}
	}
	return set
}

// PaidCount returns the number of validly paid installments.
func PaidCount(p *card.Purchase) int {
	return len(PaidSet(p))
}

// PurchaseDate returns the purchase's calendar date, falling back to today
// when the stored value is malformed. Write paths validate dates up front,
// so the fallback only masks legacy records.
func PurchaseDate(p *card.Purchase) time.Time {
	t, err := ParseDate(p.PurchaseDate)
	if err != nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	}
	return t
}

// Expand produces the purchase's full installment schedule under the given
// payment day: one entry per installment with its due date, uniform amount
// and paid flag.
func Expand(p *card.Purchase, paymentDay int) []Installment {
	n := InstallmentCount(p)
	amount := InstallmentAmount(p)
	date := PurchaseDate(p)
	paid := PaidSet(p)

	out := make([]Installment, 0, n)
	for i := 1; i <= n; i++ {
		_, isPaid := paid[i]
		out = append(out, Installment{
			Index:   i,
			DueDate: DueDate(date, 0, paymentDay, i),
			Amount:  amount,
			Paid:    isPaid,
		})
	}
	return out
}
