package notification

import (
	"context"
	"fmt"
	"log"

	"bolso/internal/domain/billing"
	"bolso/internal/domain/card"
)

// Service reacts to card/purchase snapshot changes: it pushes an alert when
// a purchase newly enters the nearing-completion window and a data-only
// refresh message so open clients reload. All derived state is recomputed
// from each full snapshot; the only memory kept is which purchases have
// already been alerted, so a purchase alerts once per stay in the window.
type Service struct {
	watcher   card.Watcher
	messenger Messenger
	tokens    []string

	alerted map[string]struct{}
}

// NewService creates a new notification service
func NewService(watcher card.Watcher, messenger Messenger, tokens []string) *Service {
	return &Service{
		watcher:   watcher,
		messenger: messenger,
		tokens:    tokens,
		alerted:   make(map[string]struct{}),
	}
}

// Run consumes snapshots until ctx is cancelled or the stream closes.
func (s *Service) Run(ctx context.Context) error {
	snapshots, err := s.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start snapshot watch: %w", err)
	}

	log.Println("Notification service watching for snapshot changes")
	for snap := range snapshots {
		s.handle(ctx, snap)
	}
	log.Println("Notification service stopped")
	return nil
}

func (s *Service) handle(ctx context.Context, snap card.Snapshot) {
	alerts := billing.NearingCompletion(snap.Purchases)

	current := make(map[string]struct{}, len(alerts))
	for _, a := range alerts {
		current[a.Purchase.ID] = struct{}{}
		if _, seen := s.alerted[a.Purchase.ID]; seen {
			continue
		}
		s.notify(ctx, snap, a)
	}
	s.alerted = current

	if len(s.tokens) > 0 {
		if err := s.messenger.SendDataOnly(ctx, s.tokens, map[string]string{"event": "refresh"}); err != nil {
			log.Printf("Failed to send refresh message: %v", err)
		}
	}
}

func (s *Service) notify(ctx context.Context, snap card.Snapshot, a billing.CompletionAlert) {
	if len(s.tokens) == 0 {
		return
	}

	cardName := "Cartão"
	for _, c := range snap.Cards {
		if c.ID == a.Purchase.CardID {
			cardName = c.Name
			break
		}
	}

	title := "Parcelas prestes a finalizar"
	body := fmt.Sprintf("%s (%s) — faltam %d de %d parcelas",
		a.Purchase.Description, cardName, a.Remaining, a.Purchase.Installments)

	err := s.messenger.SendMulticast(ctx, s.tokens, title, body, map[string]string{
		"purchaseId": a.Purchase.ID,
		"remaining":  fmt.Sprintf("%d", a.Remaining),
	})
	if err != nil {
		log.Printf("Failed to send completion alert for purchase %s: %v", a.Purchase.ID, err)
	}
}
