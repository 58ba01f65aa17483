package main

import (
	"context"
	"fmt"
	"log"

	gfirestore "cloud.google.com/go/firestore"

	"bolso/internal/domain/card"
	"bolso/internal/domain/expense"
	"bolso/internal/domain/freelance"
	"bolso/internal/domain/income"
	"bolso/internal/domain/notification"
	"bolso/internal/domain/overview"
	"bolso/internal/domain/savings"
	"bolso/internal/infrastructure/firebase"
	"bolso/internal/infrastructure/firestore"
	"bolso/internal/infrastructure/postgres"
	"bolso/internal/infrastructure/postgres/listener"
	httphandlers "bolso/internal/interfaces/http"
	"bolso/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB        *postgres.DB
	Firestore *gfirestore.Client

	// Handlers
	CardHandler      *httphandlers.CardHandler
	PurchaseHandler  *httphandlers.PurchaseHandler
	BillingHandler   *httphandlers.BillingHandler
	IncomeHandler    *httphandlers.IncomeHandler
	ExpenseHandler   *httphandlers.ExpenseHandler
	FreelanceHandler *httphandlers.FreelanceHandler
	SavingsHandler   *httphandlers.SavingsHandler
	OverviewHandler  *httphandlers.OverviewHandler

	// Messaging (nil when Firebase credentials are not configured)
	Messenger *firebase.Client
	Notifier  *notification.Service

	// Repositories (for the scheduler's reminder job)
	CardRepo     card.Repository
	PurchaseRepo card.PurchaseRepository
}

// NewDependencies initializes all application dependencies for the
// configured storage backend.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	var (
		cardRepo     card.Repository
		purchaseRepo card.PurchaseRepository
		incomeRepo   income.Repository
		expenseRepo  expense.Repository
		projectRepo  freelance.ProjectRepository
		freeExpRepo  freelance.ExpenseRepository
		savingsRepo  savings.Repository
		watcher      card.Watcher
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(cfg.Database.ConnectionString())
		if err != nil {
			return nil, err
		}
		deps.DB = db
		log.Println("Connected to database")

		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}

		cardRepo = postgres.NewCardRepository(db)
		purchaseRepo = postgres.NewPurchaseRepository(db)
		incomeRepo = postgres.NewIncomeRepository(db)
		expenseRepo = postgres.NewExpenseRepository(db)
		projectRepo = postgres.NewFreelanceProjectRepository(db)
		freeExpRepo = postgres.NewFreelanceExpenseRepository(db)
		savingsRepo = postgres.NewSavingsRepository(db)
		watcher = listener.NewBillingListener(cfg.Database.ConnectionString(), cardRepo, purchaseRepo)

	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, err
		}
		deps.Firestore = client
		log.Println("Connected to Firestore")

		cardRepo = firestore.NewCardRepository(client)
		purchaseRepo = firestore.NewPurchaseRepository(client)
		incomeRepo = firestore.NewIncomeRepository(client)
		expenseRepo = firestore.NewExpenseRepository(client)
		projectRepo = firestore.NewFreelanceProjectRepository(client)
		freeExpRepo = firestore.NewFreelanceExpenseRepository(client)
		savingsRepo = firestore.NewSavingsRepository(client)
		watcher = firestore.NewWatcher(client)

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	// Initialize domain services
	cardService := card.NewService(cardRepo, purchaseRepo)
	overviewService := overview.NewService(incomeRepo, expenseRepo, purchaseRepo, savingsRepo)

	// Initialize FCM messaging if configured
	if cfg.Firebase.CredentialsFile != "" {
		messenger, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Printf("Warning: Failed to initialize FCM client: %v", err)
		} else {
			deps.Messenger = messenger
			if len(cfg.Firebase.DeviceTokens) > 0 {
				deps.Notifier = notification.NewService(watcher, messenger, cfg.Firebase.DeviceTokens)
			}
		}
	}

	// Initialize handlers
	deps.CardHandler = httphandlers.NewCardHandler(cardService)
	deps.PurchaseHandler = httphandlers.NewPurchaseHandler(cardService)
	deps.BillingHandler = httphandlers.NewBillingHandler(cardRepo, purchaseRepo)
	deps.IncomeHandler = httphandlers.NewIncomeHandler(incomeRepo)
	deps.ExpenseHandler = httphandlers.NewExpenseHandler(expenseRepo)
	deps.FreelanceHandler = httphandlers.NewFreelanceHandler(projectRepo, freeExpRepo)
	deps.SavingsHandler = httphandlers.NewSavingsHandler(savingsRepo)
	deps.OverviewHandler = httphandlers.NewOverviewHandler(overviewService)

	deps.CardRepo = cardRepo
	deps.PurchaseRepo = purchaseRepo

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
	if d.Firestore != nil {
		d.Firestore.Close()
	}
}
