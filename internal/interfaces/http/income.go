package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"bolso/internal/domain/income"
)

type IncomeHandler struct {
	repo income.Repository
}

func NewIncomeHandler(repo income.Repository) *IncomeHandler {
	return &IncomeHandler{repo: repo}
}

// Request/Response DTOs

type CreateIncomeRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDay      int     `json:"dueDay"`
	Category    string  `json:"category"`
}

type IncomeResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	DueDay      int       `json:"dueDay"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

type IncomeListResponse struct {
	Incomes []IncomeResponse `json:"incomes"`
	Total   float64          `json:"total"`
}

func toIncomeResponse(in *income.FixedIncome) IncomeResponse {
	return IncomeResponse{
		ID:          in.ID,
		Description: in.Description,
		Amount:      in.Amount,
		DueDay:      in.DueDay,
		Category:    in.Category,
		CreatedAt:   in.CreatedAt,
	}
}

// HandleIncomes routes requests to the appropriate handler based on method
func (h *IncomeHandler) HandleIncomes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListIncomes(w, r)
	case http.MethodPost:
		h.handleCreateIncome(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleIncomeByID routes requests for a specific income
func (h *IncomeHandler) HandleIncomeByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Income ID is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, income.ErrIncomeNotFound) {
			http.Error(w, "Income not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting income %s: %v", id, err)
		http.Error(w, "Failed to delete income", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *IncomeHandler) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Error listing incomes: %v", err)
		http.Error(w, "Failed to list incomes", http.StatusInternalServerError)
		return
	}

	response := IncomeListResponse{
		Incomes: make([]IncomeResponse, 0, len(incomes)),
		Total:   income.Total(incomes),
	}
	for _, in := range incomes {
		response.Incomes = append(response.Incomes, toIncomeResponse(in))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *IncomeHandler) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create income request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := income.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		DueDay:      req.DueDay,
		Category:    req.Category,
	}
	params.Normalize()
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, err := h.repo.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating income: %v", err)
		http.Error(w, "Failed to create income", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toIncomeResponse(in))
}
