package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	httphandlers "bolso/internal/interfaces/http"
	"bolso/internal/shared/config"
	"bolso/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check and metrics
	mux.HandleFunc("/health", httphandlers.HandleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	// Cards
	mux.HandleFunc("/api/cards/", deps.CardHandler.HandleCards)
	mux.HandleFunc("/api/cards/{id}", deps.CardHandler.HandleCardByID)
	mux.HandleFunc("/api/cards/{id}/utilization", deps.CardHandler.HandleCardUtilization)
	mux.HandleFunc("/api/cards/{id}/purchases", deps.CardHandler.HandleCardPurchases)

	// Purchases and installments
	mux.HandleFunc("/api/purchases/", deps.PurchaseHandler.HandlePurchases)
	mux.HandleFunc("/api/purchases/{id}", deps.PurchaseHandler.HandlePurchaseByID)
	mux.HandleFunc("/api/purchases/{id}/installments", deps.PurchaseHandler.HandleInstallments)
	mux.HandleFunc("/api/purchases/{id}/installments/{index}/paid", deps.PurchaseHandler.HandleInstallmentPaid)

	// Billing
	mux.HandleFunc("/api/billing/months/{ym}", deps.BillingHandler.HandleMonth)
	mux.HandleFunc("/api/billing/forecast", deps.BillingHandler.HandleForecast)
	mux.HandleFunc("/api/billing/alerts", deps.BillingHandler.HandleAlerts)
	mux.HandleFunc("/api/billing/summary", deps.BillingHandler.HandleSummary)

	// Fixed incomes
	mux.HandleFunc("/api/incomes/", deps.IncomeHandler.HandleIncomes)
	mux.HandleFunc("/api/incomes/{id}", deps.IncomeHandler.HandleIncomeByID)

	// Fixed expenses
	mux.HandleFunc("/api/expenses/", deps.ExpenseHandler.HandleExpenses)
	mux.HandleFunc("/api/expenses/upcoming", deps.ExpenseHandler.HandleUpcoming)
	mux.HandleFunc("/api/expenses/{id}", deps.ExpenseHandler.HandleExpenseByID)

	// Freelance
	mux.HandleFunc("/api/freelance/projects/", deps.FreelanceHandler.HandleProjects)
	mux.HandleFunc("/api/freelance/projects/{id}", deps.FreelanceHandler.HandleProjectByID)
	mux.HandleFunc("/api/freelance/expenses/", deps.FreelanceHandler.HandleExpenses)
	mux.HandleFunc("/api/freelance/expenses/{id}", deps.FreelanceHandler.HandleExpenseByID)
	mux.HandleFunc("/api/freelance/summary", deps.FreelanceHandler.HandleSummary)

	// Savings
	mux.HandleFunc("/api/savings/entries/", deps.SavingsHandler.HandleEntries)
	mux.HandleFunc("/api/savings/entries/{id}", deps.SavingsHandler.HandleEntryByID)
	mux.HandleFunc("/api/savings/goal", deps.SavingsHandler.HandleGoal)
	mux.HandleFunc("/api/savings/progress", deps.SavingsHandler.HandleProgress)
	mux.HandleFunc("/api/savings/series", deps.SavingsHandler.HandleSeries)

	// Overview
	mux.HandleFunc("/api/overview", deps.OverviewHandler.HandleOverview)

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
