package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"bolso/internal/domain/freelance"
)

type FreelanceHandler struct {
	projects freelance.ProjectRepository
	expenses freelance.ExpenseRepository
}

func NewFreelanceHandler(projects freelance.ProjectRepository, expenses freelance.ExpenseRepository) *FreelanceHandler {
	return &FreelanceHandler{projects: projects, expenses: expenses}
}

// Request/Response DTOs

type CreateProjectRequest struct {
	Name         string  `json:"name"`
	Client       string  `json:"client"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	StartDate    string  `json:"startDate"`
	DeliveryDate string  `json:"deliveryDate"`
}

type UpdateProjectStatusRequest struct {
	Status string `json:"status"`
}

type ProjectResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Client       string    `json:"client"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	StartDate    string    `json:"startDate"`
	DeliveryDate string    `json:"deliveryDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateProjectExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	ProjectID   *string `json:"projectId,omitempty"`
}

type ProjectExpenseResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	ProjectID   *string   `json:"projectId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProjectResponse(p *freelance.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Client:       p.Client,
		Amount:       p.Amount,
		Status:       p.Status,
		StartDate:    p.StartDate,
		DeliveryDate: p.DeliveryDate,
		CreatedAt:    p.CreatedAt,
	}
}

func toProjectExpenseResponse(e *freelance.Expense) ProjectExpenseResponse {
	return ProjectExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		ProjectID:   e.ProjectID,
		CreatedAt:   e.CreatedAt,
	}
}

// HandleProjects routes requests to the appropriate handler based on method
func (h *FreelanceHandler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListProjects(w, r)
	case http.MethodPost:
		h.handleCreateProject(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleProjectByID routes requests for a specific project
func (h *FreelanceHandler) HandleProjectByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPatch:
		h.handleUpdateStatus(w, r)
	case http.MethodDelete:
		h.handleDeleteProject(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExpenses routes requests for freelance expenses
func (h *FreelanceHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListExpenses(w, r)
	case http.MethodPost:
		h.handleCreateExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExpenseByID routes requests for a specific freelance expense
func (h *FreelanceHandler) HandleExpenseByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.PathValue("id")
	if err := h.expenses.Delete(r.Context(), id); err != nil {
		if errors.Is(err, freelance.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting freelance expense %s: %v", id, err)
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary returns the received/pending/expenses/net position
func (h *FreelanceHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	projects, err := h.projects.List(r.Context())
	if err != nil {
		log.Printf("Error listing freelance projects: %v", err)
		http.Error(w, "Failed to load freelance data", http.StatusInternalServerError)
		return
	}
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		log.Printf("Error listing freelance expenses: %v", err)
		http.Error(w, "Failed to load freelance data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(freelance.Summarize(projects, expenses))
}

func (h *FreelanceHandler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		log.Printf("Error listing freelance projects: %v", err)
		http.Error(w, "Failed to list projects", http.StatusInternalServerError)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		response = append(response, toProjectResponse(p))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *FreelanceHandler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create project request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := freelance.CreateProjectParams{
		Name:         req.Name,
		Client:       req.Client,
		Amount:       req.Amount,
		Status:       req.Status,
		StartDate:    req.StartDate,
		DeliveryDate: req.DeliveryDate,
	}
	params.Normalize()
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.projects.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating freelance project: %v", err)
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProjectResponse(p))
}

func (h *FreelanceHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req UpdateProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding project status request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !freelance.IsValidStatus(req.Status) {
		http.Error(w, "Invalid project status", http.StatusBadRequest)
		return
	}

	if err := h.projects.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, freelance.ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating project %s status: %v", id, err)
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FreelanceHandler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.projects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, freelance.ErrProjectNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting project %s: %v", id, err)
		http.Error(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FreelanceHandler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		log.Printf("Error listing freelance expenses: %v", err)
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}

	response := make([]ProjectExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		response = append(response, toProjectExpenseResponse(e))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *FreelanceHandler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := freelance.CreateExpenseParams{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		ProjectID:   req.ProjectID,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.expenses.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating freelance expense: %v", err)
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProjectExpenseResponse(e))
}
