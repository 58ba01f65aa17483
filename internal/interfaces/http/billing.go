package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
)

const (
	defaultForecastMonths = 12
	maxForecastMonths     = 60
)

// BillingHandler serves the derived month views: totals, forecast series,
// nearing-completion alerts and the lifetime paid summary. Everything is
// recomputed per request from the card and purchase sets.
type BillingHandler struct {
	cards     card.Repository
	purchases card.PurchaseRepository
}

func NewBillingHandler(cards card.Repository, purchases card.PurchaseRepository) *BillingHandler {
	return &BillingHandler{cards: cards, purchases: purchases}
}

// Response DTOs

type MonthResponse struct {
	Month       billing.MonthKey   `json:"month"`
	Forecast    float64            `json:"forecast"`
	Paid        float64            `json:"paid"`
	Outstanding float64            `json:"outstanding"`
	Items       []LineItemResponse `json:"items"`
}

type LineItemResponse struct {
	PurchaseID     string  `json:"purchaseId"`
	CardID         string  `json:"cardId"`
	Description    string  `json:"description"`
	Index          int     `json:"index"`
	DueDate        string  `json:"dueDate"`
	DueDateDisplay string  `json:"dueDateDisplay"`
	Amount         float64 `json:"amount"`
	Paid           bool    `json:"paid"`
}

type ForecastResponse struct {
	Start  billing.MonthKey   `json:"start"`
	Months []billing.MonthRow `json:"months"`
}

type AlertResponse struct {
	PurchaseID   string `json:"purchaseId"`
	CardID       string `json:"cardId"`
	Description  string `json:"description"`
	Installments int    `json:"installments"`
	Remaining    int    `json:"remaining"`
}

type BillingSummaryResponse struct {
	TotalPaid float64 `json:"totalPaid"`
}

func (h *BillingHandler) snapshot(r *http.Request) ([]*card.Card, []*card.Purchase, error) {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	purchases, err := h.purchases.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return cards, purchases, nil
}

// HandleMonth returns one month's totals and sorted line items
func (h *BillingHandler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	month := billing.MonthKey(r.PathValue("ym"))
	if !month.Valid() {
		http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
		return
	}

	cards, purchases, err := h.snapshot(r)
	if err != nil {
		log.Printf("Error loading billing snapshot: %v", err)
		http.Error(w, "Failed to load billing data", http.StatusInternalServerError)
		return
	}

	totals := billing.AggregateMonth(cards, purchases, month)
	items := billing.MonthLineItems(cards, purchases, month)

	response := MonthResponse{
		Month:       month,
		Forecast:    totals.Forecast,
		Paid:        totals.Paid,
		Outstanding: totals.Outstanding,
		Items:       make([]LineItemResponse, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, LineItemResponse{
			PurchaseID:     item.PurchaseID,
			CardID:         item.CardID,
			Description:    item.Description,
			Index:          item.Index,
			DueDate:        billing.FormatDate(item.DueDate),
			DueDateDisplay: billing.FormatDisplayDate(item.DueDate),
			Amount:         item.Amount,
			Paid:           item.Paid,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleForecast returns a forward-looking series of month totals.
// Query params: start=YYYY-MM (default current month), months=N (default 12).
func (h *BillingHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := billing.CurrentMonthKey()
	if s := r.URL.Query().Get("start"); s != "" {
		start = billing.MonthKey(s)
		if !start.Valid() {
			http.Error(w, "Invalid start month, expected YYYY-MM", http.StatusBadRequest)
			return
		}
	}

	months := defaultForecastMonths
	if m := r.URL.Query().Get("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > maxForecastMonths {
			http.Error(w, "Invalid months count", http.StatusBadRequest)
			return
		}
		months = n
	}

	cards, purchases, err := h.snapshot(r)
	if err != nil {
		log.Printf("Error loading billing snapshot: %v", err)
		http.Error(w, "Failed to load billing data", http.StatusInternalServerError)
		return
	}

	series := billing.ForecastSeries(cards, purchases, start, months)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ForecastResponse{Start: start, Months: series})
}

// HandleAlerts returns purchases nearing completion
func (h *BillingHandler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	purchases, err := h.purchases.List(r.Context())
	if err != nil {
		log.Printf("Error listing purchases: %v", err)
		http.Error(w, "Failed to load billing data", http.StatusInternalServerError)
		return
	}

	alerts := billing.NearingCompletion(purchases)
	response := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		response = append(response, AlertResponse{
			PurchaseID:   a.Purchase.ID,
			CardID:       a.Purchase.CardID,
			Description:  a.Purchase.Description,
			Installments: a.Purchase.Installments,
			Remaining:    a.Remaining,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleSummary returns the lifetime total of paid installments
func (h *BillingHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	purchases, err := h.purchases.List(r.Context())
	if err != nil {
		log.Printf("Error listing purchases: %v", err)
		http.Error(w, "Failed to load billing data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillingSummaryResponse{TotalPaid: billing.TotalPaid(purchases)})
}
