package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"bolso/internal/domain/expense"
)

const defaultUpcomingWindow = 7

type ExpenseHandler struct {
	repo expense.Repository
}

func NewExpenseHandler(repo expense.Repository) *ExpenseHandler {
	return &ExpenseHandler{repo: repo}
}

// Request/Response DTOs

type CreateExpenseRequest struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	DueDay   int     `json:"dueDay"`
}

type SetExpenseActiveRequest struct {
	Active bool `json:"active"`
}

type ExpenseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Category  string    `json:"category"`
	DueDay    int       `json:"dueDay"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type ExpenseListResponse struct {
	Expenses    []ExpenseResponse  `json:"expenses"`
	TotalActive float64            `json:"totalActive"`
	ByCategory  map[string]float64 `json:"byCategory"`
}

func toExpenseResponse(e *expense.FixedExpense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Name:      e.Name,
		Amount:    e.Amount,
		Category:  e.Category,
		DueDay:    e.DueDay,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}

// HandleExpenses routes requests to the appropriate handler based on method
func (h *ExpenseHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListExpenses(w, r)
	case http.MethodPost:
		h.handleCreateExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExpenseByID routes requests for a specific expense
func (h *ExpenseHandler) HandleExpenseByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPatch:
		h.handleSetActive(w, r)
	case http.MethodDelete:
		h.handleDeleteExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleUpcoming returns active expenses due within the window, in calendar
// order. Query param: days (default 7).
func (h *ExpenseHandler) HandleUpcoming(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	window := defaultUpcomingWindow
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > 31 {
			http.Error(w, "Invalid days window", http.StatusBadRequest)
			return
		}
		window = n
	}

	expenses, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Error listing expenses: %v", err)
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}

	upcoming := expense.UpcomingWithin(expenses, time.Now().Day(), window)
	response := make([]ExpenseResponse, 0, len(upcoming))
	for _, e := range upcoming {
		response = append(response, toExpenseResponse(e))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *ExpenseHandler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("Error listing expenses: %v", err)
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}

	ordered := expense.CalendarOrder(expenses)
	response := ExpenseListResponse{
		Expenses:    make([]ExpenseResponse, 0, len(ordered)),
		TotalActive: expense.TotalActive(expenses),
		ByCategory:  expense.TotalsByCategory(expenses),
	}
	for _, e := range ordered {
		response.Expenses = append(response.Expenses, toExpenseResponse(e))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *ExpenseHandler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := expense.CreateParams{
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		DueDay:   req.DueDay,
	}
	params.Normalize()
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.repo.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating expense: %v", err)
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toExpenseResponse(e))
}

func (h *ExpenseHandler) handleSetActive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Expense ID is required", http.StatusBadRequest)
		return
	}

	var req SetExpenseActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding expense active request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetActive(r.Context(), id, req.Active); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating expense %s: %v", id, err)
		http.Error(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExpenseHandler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Expense ID is required", http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting expense %s: %v", id, err)
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
