package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"bolso/internal/domain/savings"
)

const defaultSavingsSeriesMonths = 6

type SavingsHandler struct {
	repo savings.Repository
}

func NewSavingsHandler(repo savings.Repository) *SavingsHandler {
	return &SavingsHandler{repo: repo}
}

// Request/Response DTOs

type CreateSavingsEntryRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type SetSavingsGoalRequest struct {
	MonthlyGoal float64 `json:"monthlyGoal"`
}

type SavingsEntryResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SavingsListResponse struct {
	Entries []SavingsEntryResponse `json:"entries"`
	Balance float64                `json:"balance"`
}

func toSavingsEntryResponse(e *savings.Entry) SavingsEntryResponse {
	return SavingsEntryResponse{
		ID:          e.ID,
		Type:        e.Type,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// HandleEntries routes requests to the appropriate handler based on method
func (h *SavingsHandler) HandleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListEntries(w, r)
	case http.MethodPost:
		h.handleCreateEntry(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleEntryByID routes requests for a specific entry
func (h *SavingsHandler) HandleEntryByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, savings.ErrEntryNotFound) {
			http.Error(w, "Entry not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting savings entry %s: %v", id, err)
		http.Error(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGoal reads or replaces the monthly savings goal
func (h *SavingsHandler) HandleGoal(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetGoal(w, r)
	case http.MethodPut:
		h.handleSetGoal(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleProgress returns goal progress for the current balance
func (h *SavingsHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Error listing savings entries: %v", err)
		http.Error(w, "Failed to load savings data", http.StatusInternalServerError)
		return
	}
	goal, err := h.repo.GetGoal(r.Context())
	if err != nil {
		log.Printf("Error getting savings goal: %v", err)
		http.Error(w, "Failed to load savings data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(savings.GoalProgress(entries, *goal))
}

// HandleSeries returns the trailing monthly net series.
// Query param: months (default 6).
func (h *SavingsHandler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	months := defaultSavingsSeriesMonths
	if m := r.URL.Query().Get("months"); m != "" {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 36 {
			http.Error(w, "Invalid months count", http.StatusBadRequest)
			return
		}
		months = n
	}

	entries, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Error listing savings entries: %v", err)
		http.Error(w, "Failed to load savings data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(savings.MonthlySeries(entries, time.Now(), months))
}

func (h *SavingsHandler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Error listing savings entries: %v", err)
		http.Error(w, "Failed to list entries", http.StatusInternalServerError)
		return
	}

	response := SavingsListResponse{
		Entries: make([]SavingsEntryResponse, 0, len(entries)),
		Balance: savings.Balance(entries),
	}
	for _, e := range entries {
		response.Entries = append(response.Entries, toSavingsEntryResponse(e))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *SavingsHandler) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateSavingsEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create entry request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := savings.CreateParams{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
	}
	params.Normalize()
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.repo.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating savings entry: %v", err)
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toSavingsEntryResponse(e))
}

func (h *SavingsHandler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.repo.GetGoal(r.Context())
	if err != nil {
		log.Printf("Error getting savings goal: %v", err)
		http.Error(w, "Failed to get goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goal)
}

func (h *SavingsHandler) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var req SetSavingsGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding set goal request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.MonthlyGoal < 0 {
		http.Error(w, "Goal must be >= 0", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetGoal(r.Context(), req.MonthlyGoal); err != nil {
		log.Printf("Error setting savings goal: %v", err)
		http.Error(w, "Failed to set goal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
