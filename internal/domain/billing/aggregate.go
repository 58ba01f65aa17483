package billing

import (
	"math"
	"sort"
	"time"

	"bolso/internal/domain/card"
)

// MonthTotals aggregates all installments due in one month.
type MonthTotals struct {
	Forecast    float64 `json:"forecast"`
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

// MonthRow is one month of a forward-looking forecast series.
type MonthRow struct {
	Month MonthKey `json:"month"`
	MonthTotals
}

// LineItem is one installment rendered inside a month view.
type LineItem struct {
	PurchaseID  string    `json:"purchaseId"`
	CardID      string    `json:"cardId"`
	Description string    `json:"description"`
	Index       int       `json:"index"`
	DueDate     time.Time `json:"dueDate"`
	Amount      float64   `json:"amount"`
	Paid        bool      `json:"paid"`
}

func cardIndex(cards []*card.Card) map[string]*card.Card {
	byID := make(map[string]*card.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	return byID
}

// AggregateMonth computes the total forecast, paid and outstanding amounts
// across all installments due in targetMonth. Purchases referencing a card
// absent from the snapshot are skipped: card and purchase sets arrive on
// independent streams and may be transiently inconsistent.
func AggregateMonth(cards []*card.Card, purchases []*card.Purchase, targetMonth MonthKey) MonthTotals {
	byID := cardIndex(cards)

	var forecast, paid float64
	for _, p := range purchases {
		c, ok := byID[p.CardID]
		if !ok {
			continue
		}
		for _, inst := range Expand(p, c.PaymentDay) {
			if MonthKeyFor(inst.DueDate) != targetMonth {
				continue
			}
			forecast += inst.Amount
			if inst.Paid {
				paid += inst.Amount
			}
		}
	}

	return MonthTotals{
		Forecast:    forecast,
		Paid:        paid,
		Outstanding: math.Max(0, forecast-paid),
	}
}

// ForecastSeries projects monthCount consecutive months starting at
// startMonth. An unparsable start anchors at the current month.
func ForecastSeries(cards []*card.Card, purchases []*card.Purchase, startMonth MonthKey, monthCount int) []MonthRow {
	base, err := ParseMonthKey(string(startMonth))
	if err != nil {
		base, _ = ParseMonthKey(string(CurrentMonthKey()))
	}

	rows := make([]MonthRow, 0, monthCount)
	for i := 0; i < monthCount; i++ {
		month := MonthKeyFor(AddMonthsClamped(base, i, 1))
		rows = append(rows, MonthRow{
			Month:       month,
			MonthTotals: AggregateMonth(cards, purchases, month),
		})
	}
	return rows
}

// MonthLineItems lists every installment due in targetMonth, sorted by due
// date ascending and then purchase description ascending.
func MonthLineItems(cards []*card.Card, purchases []*card.Purchase, targetMonth MonthKey) []LineItem {
	byID := cardIndex(cards)

	var items []LineItem
	for _, p := range purchases {
		c, ok := byID[p.CardID]
		if !ok {
			continue
		}
		for _, inst := range Expand(p, c.PaymentDay) {
			if MonthKeyFor(inst.DueDate) != targetMonth {
				continue
			}
			items = append(items, LineItem{
				PurchaseID:  p.ID,
				CardID:      p.CardID,
				Description: p.Description,
				Index:       inst.Index,
				DueDate:     inst.DueDate,
				Amount:      inst.Amount,
				Paid:        inst.Paid,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].DueDate.Equal(items[j].DueDate) {
			return items[i].DueDate.Before(items[j].DueDate)
		}
		return items[i].Description < items[j].Description
	})
	return items
}

// TotalPaid sums the paid installment amounts across all purchases,
// regardless of due month. This is the lifetime figure shown in the
// cards header.
func TotalPaid(purchases []*card.Purchase) float64 {
	var total float64
	for _, p := range purchases {
		total += float64(PaidCount(p)) * InstallmentAmount(p)
	}
	return total
}
