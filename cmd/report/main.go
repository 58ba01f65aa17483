package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
	"bolso/internal/infrastructure/firestore"
	"bolso/internal/infrastructure/postgres"
	"bolso/internal/shared/config"
)

const usage = `Bolso Report CLI - Offline billing reports

Usage:
  report <command> [options]

Commands:
  month      Print one month's installment totals and line items
  forecast   Print a forward-looking monthly forecast table
  cards      Print per-card limit utilization
  alerts     Print purchases nearing completion

Examples:
  # Current month's bill
  report month

  # A specific month
  report month --month=2025-03

  # Twelve months ahead starting from the current month
  report forecast --months=12

  # Forecast from an explicit starting month
  report forecast --start=2025-01 --months=6
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "month":
		runMonth(os.Args[2:])
	case "forecast":
		runForecast(os.Args[2:])
	case "cards":
		runCards(os.Args[2:])
	case "alerts":
		runAlerts(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// loadSnapshot connects to the configured backend and fetches all cards and
// purchases. The returned cleanup must be called before exit.
func loadSnapshot(ctx context.Context) (card.Snapshot, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		cardRepo     card.Repository
		purchaseRepo card.PurchaseRepository
		cleanup      func()
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(cfg.Database.ConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		cardRepo = postgres.NewCardRepository(db)
		purchaseRepo = postgres.NewPurchaseRepository(db)
		cleanup = func() { db.Close() }

	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		cardRepo = firestore.NewCardRepository(client)
		purchaseRepo = firestore.NewPurchaseRepository(client)
		cleanup = func() { client.Close() }

	default:
		log.Fatalf("Unknown store backend: %s", cfg.Store.Backend)
	}

	cards, err := cardRepo.List(ctx)
	if err != nil {
		cleanup()
		log.Fatalf("Failed to list cards: %v", err)
	}
	purchases, err := purchaseRepo.List(ctx)
	if err != nil {
		cleanup()
		log.Fatalf("Failed to list purchases: %v", err)
	}

	return card.Snapshot{Cards: cards, Purchases: purchases}, cleanup
}

func runMonth(args []string) {
	fs := flag.NewFlagSet("month", flag.ExitOnError)
	monthStr := fs.String("month", string(billing.CurrentMonthKey()), "Month to report (YYYY-MM)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	month := billing.MonthKey(*monthStr)
	if !month.Valid() {
		log.Fatalf("Invalid month %q, expected YYYY-MM", *monthStr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, cleanup := loadSnapshot(ctx)
	defer cleanup()

	totals := billing.AggregateMonth(snap.Cards, snap.Purchases, month)
	items := billing.MonthLineItems(snap.Cards, snap.Purchases, month)

	fmt.Printf("=== %s ===\n", month)
	fmt.Printf("  Forecast:     R$ %.2f\n", totals.Forecast)
	fmt.Printf("  Paid:         R$ %.2f\n", totals.Paid)
	fmt.Printf("  Outstanding:  R$ %.2f\n\n", totals.Outstanding)

	if len(items) == 0 {
		fmt.Println("No installments due this month.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DUE\tDESCRIPTION\tINSTALLMENT\tAMOUNT\tPAID")
	for _, item := range items {
		paid := ""
		if item.Paid {
			paid = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\tR$ %.2f\t%s\n",
			billing.FormatDisplayDate(item.DueDate), item.Description, item.Index, item.Amount, paid)
	}
	w.Flush()
}

func runForecast(args []string) {
	fs := flag.NewFlagSet("forecast", flag.ExitOnError)
	startStr := fs.String("start", string(billing.CurrentMonthKey()), "Starting month (YYYY-MM)")
	months := fs.Int("months", 12, "Number of months to forecast (1-60)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	start := billing.MonthKey(*startStr)
	if !start.Valid() {
		log.Fatalf("Invalid start month %q, expected YYYY-MM", *startStr)
	}
	if *months < 1 || *months > 60 {
		log.Fatalf("Invalid months %d, expected 1-60", *months)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, cleanup := loadSnapshot(ctx)
	defer cleanup()

	rows := billing.ForecastSeries(snap.Cards, snap.Purchases, start, *months)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tFORECAST\tPAID\tOUTSTANDING")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\tR$ %.2f\tR$ %.2f\tR$ %.2f\n",
			row.Month, row.Forecast, row.Paid, row.Outstanding)
	}
	w.Flush()
}

func runCards(args []string) {
	fs := flag.NewFlagSet("cards", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, cleanup := loadSnapshot(ctx)
	defer cleanup()

	if len(snap.Cards) == 0 {
		fmt.Println("No cards registered.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CARD\tLIMIT\tLOCKED\tAVAILABLE\tUSED")
	for _, c := range snap.Cards {
		u := billing.CardUtilization(c, snap.Purchases)
		fmt.Fprintf(w, "%s\tR$ %.2f\tR$ %.2f\tR$ %.2f\t%.1f%%\n",
			c.Name, c.Limit, u.Locked, u.Available, u.PercentUsed)
	}
	w.Flush()
}

func runAlerts(args []string) {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, cleanup := loadSnapshot(ctx)
	defer cleanup()

	alerts := billing.NearingCompletion(snap.Purchases)
	if len(alerts) == 0 {
		fmt.Println("No purchases nearing completion.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DESCRIPTION\tINSTALLMENTS\tREMAINING")
	for _, a := range alerts {
		fmt.Fprintf(w, "%s\t%d\t%d\n", a.Purchase.Description, a.Purchase.Installments, a.Remaining)
	}
	w.Flush()
}
