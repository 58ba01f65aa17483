package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
	"bolso/internal/domain/notification"
)

var (
	jobMeter    = otel.Meter("bolso/scheduler")
	jobTotal, _ = jobMeter.Int64Counter("scheduler.job.total",
		metric.WithDescription("Total jobs executed by status"))
)

// ReminderJob pushes a summary of installments coming due soon. It expands
// every purchase against its card's payment day and selects unpaid
// installments inside the reminder window.
type ReminderJob struct {
	cards      card.Repository
	purchases  card.PurchaseRepository
	messenger  notification.Messenger
	tokens     []string
	windowDays int
}

func NewReminderJob(cards card.Repository, purchases card.PurchaseRepository, messenger notification.Messenger, tokens []string, windowDays int) *ReminderJob {
	return &ReminderJob{
		cards:      cards,
		purchases:  purchases,
		messenger:  messenger,
		tokens:     tokens,
		windowDays: windowDays,
	}
}

func (j *ReminderJob) Name() string { return "installment-reminder" }

// Run sends one multicast summarizing the due-soon installments, or nothing
// when the window is empty.
func (j *ReminderJob) Run(ctx context.Context) error {
	if len(j.tokens) == 0 {
		log.Println("Reminder job: no device tokens configured, skipping")
		return nil
	}

	count, total, err := j.dueSoon(ctx, time.Now())
	if err != nil {
		jobTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		return err
	}
	if count == 0 {
		jobTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "empty")))
		return nil
	}

	title := "Parcelas vencendo"
	body := fmt.Sprintf("%d parcela(s) vencem nos próximos %d dias, total R$ %.2f", count, j.windowDays, total)
	if err := j.messenger.SendMulticast(ctx, j.tokens, title, body, map[string]string{"event": "reminder"}); err != nil {
		jobTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		return fmt.Errorf("failed to send reminder: %w", err)
	}

	jobTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "sent")))
	log.Printf("Reminder job: notified %d installment(s) due within %d days", count, j.windowDays)
	return nil
}

// dueSoon counts unpaid installments with due dates in [today, today+window].
// Purchases whose card is missing are skipped.
func (j *ReminderJob) dueSoon(ctx context.Context, now time.Time) (int, float64, error) {
	cards, err := j.cards.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list cards: %w", err)
	}
	purchases, err := j.purchases.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list purchases: %w", err)
	}

	paymentDays := make(map[string]int, len(cards))
	for _, c := range cards {
		paymentDays[c.ID] = c.PaymentDay
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	horizon := today.AddDate(0, 0, j.windowDays)

	var count int
	var total float64
	for _, p := range purchases {
		paymentDay, ok := paymentDays[p.CardID]
		if !ok {
			continue
		}
		for _, inst := range billing.Expand(p, paymentDay) {
			if inst.Paid {
				continue
			}
			if inst.DueDate.Before(today) || inst.DueDate.After(horizon) {
				continue
			}
			count++
			total += inst.Amount
		}
	}

	return count, total, nil
}
