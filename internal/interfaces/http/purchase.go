package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
)

type PurchaseHandler struct {
	svc *card.Service
}

func NewPurchaseHandler(svc *card.Service) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// Request/Response DTOs

type CreatePurchaseRequest struct {
	CardID       string  `json:"cardId"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Installments int     `json:"installments"`
	PurchaseDate string  `json:"purchaseDate"`
}

type PurchaseResponse struct {
	ID               string    `json:"id"`
	CardID           string    `json:"cardId"`
	Description      string    `json:"description"`
	Amount           float64   `json:"amount"`
	Installments     int       `json:"installments"`
	PurchaseDate     string    `json:"purchaseDate"`
	PaidInstallments []int     `json:"paidInstallments"`
	CreatedAt        time.Time `json:"createdAt"`
}

// InstallmentResponse renders one installment. DueDateDisplay is the
// DD/MM/YYYY form used by the dashboard; DueDate stays machine-readable.
type InstallmentResponse struct {
	Index          int     `json:"index"`
	DueDate        string  `json:"dueDate"`
	DueDateDisplay string  `json:"dueDateDisplay"`
	Amount         float64 `json:"amount"`
	Paid           bool    `json:"paid"`
}

type SetInstallmentPaidRequest struct {
	Paid bool `json:"paid"`
}

func toPurchaseResponse(p *card.Purchase) PurchaseResponse {
	paid := p.PaidInstallments
	if paid == nil {
		paid = []int{}
	}
	return PurchaseResponse{
		ID:               p.ID,
		CardID:           p.CardID,
		Description:      p.Description,
		Amount:           p.Amount,
		Installments:     p.Installments,
		PurchaseDate:     p.PurchaseDate,
		PaidInstallments: paid,
		CreatedAt:        p.CreatedAt,
	}
}

// HandlePurchases routes requests to the appropriate handler based on method
func (h *PurchaseHandler) HandlePurchases(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListPurchases(w, r)
	case http.MethodPost:
		h.handleCreatePurchase(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandlePurchaseByID routes requests for a specific purchase
func (h *PurchaseHandler) HandlePurchaseByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetPurchase(w, r)
	case http.MethodDelete:
		h.handleDeletePurchase(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PurchaseHandler) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.svc.ListPurchases(r.Context())
	if err != nil {
		log.Printf("Error listing purchases: %v", err)
		http.Error(w, "Failed to list purchases", http.StatusInternalServerError)
		return
	}

	response := make([]PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		response = append(response, toPurchaseResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *PurchaseHandler) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create purchase request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreatePurchase(r.Context(), card.CreatePurchaseParams{
		CardID:       req.CardID,
		Description:  req.Description,
		Amount:       req.Amount,
		Installments: req.Installments,
		PurchaseDate: req.PurchaseDate,
	})
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, card.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating purchase: %v", err)
		http.Error(w, "Failed to create purchase", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toPurchaseResponse(p))
}

func (h *PurchaseHandler) handleGetPurchase(w http.ResponseWriter, r *http.Request) {
	purchaseID := r.PathValue("id")
	if purchaseID == "" {
		http.Error(w, "Purchase ID is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetPurchase(r.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, card.ErrPurchaseNotFound) {
			http.Error(w, "Purchase not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting purchase %s: %v", purchaseID, err)
		http.Error(w, "Failed to get purchase", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPurchaseResponse(p))
}

func (h *PurchaseHandler) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	purchaseID := r.PathValue("id")
	if purchaseID == "" {
		http.Error(w, "Purchase ID is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeletePurchase(r.Context(), purchaseID); err != nil {
		if errors.Is(err, card.ErrPurchaseNotFound) {
			http.Error(w, "Purchase not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting purchase %s: %v", purchaseID, err)
		http.Error(w, "Failed to delete purchase", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleInstallments returns the full installment schedule of a purchase,
// using the owning card's payment day.
func (h *PurchaseHandler) HandleInstallments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	purchaseID := r.PathValue("id")
	p, err := h.svc.GetPurchase(r.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, card.ErrPurchaseNotFound) {
			http.Error(w, "Purchase not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting purchase %s: %v", purchaseID, err)
		http.Error(w, "Failed to get purchase", http.StatusInternalServerError)
		return
	}

	paymentDay := card.DefaultPaymentDay
	if c, err := h.svc.GetCard(r.Context(), p.CardID); err == nil {
		paymentDay = c.PaymentDay
	}

	installments := billing.Expand(p, paymentDay)
	response := make([]InstallmentResponse, 0, len(installments))
	for _, inst := range installments {
		response = append(response, InstallmentResponse{
			Index:          inst.Index,
			DueDate:        billing.FormatDate(inst.DueDate),
			DueDateDisplay: billing.FormatDisplayDate(inst.DueDate),
			Amount:         inst.Amount,
			Paid:           inst.Paid,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleInstallmentPaid toggles the paid state of one installment
func (h *PurchaseHandler) HandleInstallmentPaid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	purchaseID := r.PathValue("id")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "Invalid installment index", http.StatusBadRequest)
		return
	}

	var req SetInstallmentPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding installment paid request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetInstallmentPaid(r.Context(), purchaseID, index, req.Paid); err != nil {
		if errors.Is(err, card.ErrPurchaseNotFound) {
			http.Error(w, "Purchase not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, card.ErrInvalidInput) {
			http.Error(w, "Invalid installment index", http.StatusBadRequest)
			return
		}
		log.Printf("Error updating installment %d of purchase %s: %v", index, purchaseID, err)
		http.Error(w, "Failed to update installment", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
