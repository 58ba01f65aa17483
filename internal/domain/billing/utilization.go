package billing

import (
	"math"

	"bolso/internal/domain/card"
)

// Utilization describes how much of a card's limit is committed.
type Utilization struct {
	Locked      float64 `json:"locked"`
	Available   float64 `json:"available"`
	PercentUsed float64 `json:"percentUsed"`
}

// PurchaseRemaining returns the unpaid balance of a single purchase:
// total amount minus the validly paid installments, floored at zero.
func PurchaseRemaining(p *card.Purchase) float64 {
	return math.Max(0, p.Amount-float64(PaidCount(p))*InstallmentAmount(p))
}

// CardUtilization computes the locked (committed but unpaid) balance of a
// card across its purchases, the remaining available limit, and the percent
// of the limit in use. This is a lifetime view independent of due dates:
// an installment due next year locks limit today.
func CardUtilization(c *card.Card, purchases []*card.Purchase) Utilization {
	var locked float64
	for _, p := range purchases {
		if p.CardID != c.ID {
			continue
		}
		locked += PurchaseRemaining(p)
	}

	var pct float64
	if c.Limit > 0 {
		pct = math.Min(locked/c.Limit*100, 100)
	}

	return Utilization{
		Locked:      locked,
		Available:   math.Max(0, c.Limit-locked),
		PercentUsed: pct,
	}
}
