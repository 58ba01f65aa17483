// Package listener implements card.Watcher on PostgreSQL LISTEN/NOTIFY.
// Statement-level triggers fire pg_notify on every card or purchase write;
// the listener refetches both sets and emits a fresh snapshot.
package listener

import (
	"context"
	"log"
	"time"

	"github.com/lib/pq"

	"bolso/internal/domain/card"
)

const (
	channelName       = "billing_changed"
	reconnectInterval = 5 * time.Second
	keepAliveInterval = 90 * time.Second

	// debounceWindow coalesces notification bursts (e.g. a card delete
	// cascading over its purchases) into a single refetch.
	debounceWindow = 200 * time.Millisecond
)

// BillingListener watches the billing tables for changes.
type BillingListener struct {
	connStr   string
	cards     card.Repository
	purchases card.PurchaseRepository
}

func NewBillingListener(connStr string, cards card.Repository, purchases card.PurchaseRepository) *BillingListener {
	return &BillingListener{connStr: connStr, cards: cards, purchases: purchases}
}

// Watch emits an initial snapshot, then one snapshot per change burst.
// The channel is buffered with latest-wins semantics and closes when ctx
// is cancelled.
func (l *BillingListener) Watch(ctx context.Context) (<-chan card.Snapshot, error) {
	out := make(chan card.Snapshot, 1)
	go l.run(ctx, out)
	return out, nil
}

func (l *BillingListener) run(ctx context.Context, out chan card.Snapshot) {
	defer close(out)

	l.refetch(ctx, out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			l.connectAndListen(ctx, out)
		}

		// Wait before reconnecting
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectInterval):
			log.Println("Reconnecting to PostgreSQL for billing notifications...")
		}
	}
}

func (l *BillingListener) connectAndListen(ctx context.Context, out chan card.Snapshot) {
	listener := pq.NewListener(l.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("Listener error: %v", err)
		}
		switch ev {
		case pq.ListenerEventConnected:
			log.Println("Connected to PostgreSQL notification channel")
		case pq.ListenerEventDisconnected:
			log.Println("Disconnected from PostgreSQL notification channel")
		case pq.ListenerEventReconnected:
			log.Println("Reconnected to PostgreSQL notification channel")
		case pq.ListenerEventConnectionAttemptFailed:
			log.Printf("Connection attempt failed: %v", err)
		}
	})

	defer listener.Close()

	if err := listener.Listen(channelName); err != nil {
		log.Printf("Failed to listen on channel %s: %v", channelName, err)
		return
	}

	log.Printf("Listening on channel: %s", channelName)

	// A reconnect may have missed notifications; refetch to resync.
	l.refetch(ctx, out)

	for {
		select {
		case <-ctx.Done():
			return
		case notification := <-listener.Notify:
			if notification == nil {
				// Connection lost, break to reconnect
				return
			}
			l.debounce(ctx, listener.Notify)
			l.refetch(ctx, out)
		case <-time.After(keepAliveInterval):
			// Ping to keep connection alive
			go func() {
				if err := listener.Ping(); err != nil {
					log.Printf("Listener ping failed: %v", err)
				}
			}()
		}
	}
}

// debounce drains further notifications arriving within the window so one
// write burst produces one refetch.
func (l *BillingListener) debounce(ctx context.Context, notify <-chan *pq.Notification) {
	timer := time.NewTimer(debounceWindow)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n := <-notify:
			if n == nil {
				return
			}
		case <-timer.C:
			return
		}
	}
}

func (l *BillingListener) refetch(ctx context.Context, out chan card.Snapshot) {
	cards, err := l.cards.List(ctx)
	if err != nil {
		log.Printf("Failed to refetch cards: %v", err)
		return
	}
	purchases, err := l.purchases.List(ctx)
	if err != nil {
		log.Printf("Failed to refetch purchases: %v", err)
		return
	}

	snap := card.Snapshot{Cards: cards, Purchases: purchases}
	for {
		select {
		case out <- snap:
			return
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}
