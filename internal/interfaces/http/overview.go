package http

import (
	"encoding/json"
	"log"
	"net/http"

	"bolso/internal/domain/overview"
)

type OverviewHandler struct {
	svc *overview.Service
}

func NewOverviewHandler(svc *overview.Service) *OverviewHandler {
	return &OverviewHandler{svc: svc}
}

// HandleOverview returns the cross-domain dashboard summary
func (h *OverviewHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ov, err := h.svc.Compute(r.Context())
	if err != nil {
		log.Printf("Error computing overview: %v", err)
		http.Error(w, "Failed to compute overview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ov)
}
