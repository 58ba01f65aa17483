package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
)

type CardHandler struct {
	svc *card.Service
}

func NewCardHandler(svc *card.Service) *CardHandler {
	return &CardHandler{svc: svc}
}

// Request/Response DTOs

type CreateCardRequest struct {
	Name            string  `json:"name"`
	Color           string  `json:"color"`
	Limit           float64 `json:"limit"`
	GoodPurchaseDay int     `json:"goodPurchaseDay"`
	PaymentDay      int     `json:"paymentDay"`
}

type CardResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color"`
	Limit           float64   `json:"limit"`
	GoodPurchaseDay int       `json:"goodPurchaseDay"`
	PaymentDay      int       `json:"paymentDay"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CardUtilizationResponse struct {
	CardID      string  `json:"cardId"`
	Limit       float64 `json:"limit"`
	Locked      float64 `json:"locked"`
	Available   float64 `json:"available"`
	PercentUsed float64 `json:"percentUsed"`
}

func toCardResponse(c *card.Card) CardResponse {
	return CardResponse{
		ID:              c.ID,
		Name:            c.Name,
		Color:           c.Color,
		Limit:           c.Limit,
		GoodPurchaseDay: c.GoodPurchaseDay,
		PaymentDay:      c.PaymentDay,
		CreatedAt:       c.CreatedAt,
	}
}

// HandleCards routes requests to the appropriate handler based on method
func (h *CardHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListCards(w, r)
	case http.MethodPost:
		h.handleCreateCard(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCardByID routes requests for a specific card
func (h *CardHandler) HandleCardByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetCard(w, r)
	case http.MethodDelete:
		h.handleDeleteCard(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CardHandler) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.ListCards(r.Context())
	if err != nil {
		log.Printf("Error listing cards: %v", err)
		http.Error(w, "Failed to list cards", http.StatusInternalServerError)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		response = append(response, toCardResponse(c))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *CardHandler) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create card request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.svc.CreateCard(r.Context(), card.CreateCardParams{
		Name:            req.Name,
		Color:           req.Color,
		Limit:           req.Limit,
		GoodPurchaseDay: req.GoodPurchaseDay,
		PaymentDay:      req.PaymentDay,
	})
	if err != nil {
		if errors.Is(err, card.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating card: %v", err)
		http.Error(w, "Failed to create card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCardResponse(c))
}

func (h *CardHandler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting card %s: %v", cardID, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toCardResponse(c))
}

// handleDeleteCard deletes a card and all of its purchases
func (h *CardHandler) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		http.Error(w, "Card ID is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteCard(r.Context(), cardID); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting card %s: %v", cardID, err)
		http.Error(w, "Failed to delete card", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCardUtilization returns the locked/available/percent view of one card
func (h *CardHandler) HandleCardUtilization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cardID := r.PathValue("id")
	c, err := h.svc.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting card %s: %v", cardID, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return
	}

	purchases, err := h.svc.ListPurchasesByCard(r.Context(), cardID)
	if err != nil {
		log.Printf("Error listing purchases for card %s: %v", cardID, err)
		http.Error(w, "Failed to list purchases", http.StatusInternalServerError)
		return
	}

	u := billing.CardUtilization(c, purchases)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CardUtilizationResponse{
		CardID:      c.ID,
		Limit:       c.Limit,
		Locked:      u.Locked,
		Available:   u.Available,
		PercentUsed: u.PercentUsed,
	})
}

// HandleCardPurchases lists the purchases of one card
func (h *CardHandler) HandleCardPurchases(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cardID := r.PathValue("id")
	if _, err := h.svc.GetCard(r.Context(), cardID); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			http.Error(w, "Card not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting card %s: %v", cardID, err)
		http.Error(w, "Failed to get card", http.StatusInternalServerError)
		return
	}

	purchases, err := h.svc.ListPurchasesByCard(r.Context(), cardID)
	if err != nil {
		log.Printf("Error listing purchases for card %s: %v", cardID, err)
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
