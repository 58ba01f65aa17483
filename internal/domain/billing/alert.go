package billing

import (
	"sort"

	"bolso/internal/domain/card"
)

// CompletionAlert flags a purchase within two installments of being paid off.
type CompletionAlert struct {
	Purchase  *card.Purchase `json:"purchase"`
	Remaining int            `json:"remaining"`
}

// NearingCompletion selects purchases with more than one installment that
// have at most two unpaid installments left, sorted by remaining count
// ascending. Single-installment purchases never alert. The result is a pure
// function of the current snapshot and is recomputed on every change.
func NearingCompletion(purchases []*card.Purchase) []CompletionAlert {
	var alerts []CompletionAlert
	for _, p := range purchases {
		if p.Installments <= 1 {
			continue
		}
		remaining := p.Installments - PaidCount(p)
		if remaining > 0 && remaining <= 2 {
			alerts = append(alerts, CompletionAlert{Purchase: p, Remaining: remaining})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Remaining < alerts[j].Remaining
	})
	return alerts
}
