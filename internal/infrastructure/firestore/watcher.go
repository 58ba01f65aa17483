package firestore

import (
	"context"
	"log"
	"sync"

	"cloud.google.com/go/firestore"

	"bolso/internal/domain/card"
)

// Watcher implements card.Watcher on Firestore snapshot listeners. Each of
// the two collections is watched independently; any change to either one
// emits a fresh combined card.Snapshot.
type Watcher struct {
	client *firestore.Client

	mu        sync.Mutex
	cards     []*card.Card
	purchases []*card.Purchase
}

func NewWatcher(client *firestore.Client) *Watcher {
	return &Watcher{client: client}
}

// Watch starts both collection listeners and returns the snapshot channel.
// The channel is buffered with latest-wins semantics: if the consumer lags,
// intermediate snapshots are dropped in favor of the newest one. The channel
// closes when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan card.Snapshot, error) {
	out := make(chan card.Snapshot, 1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		w.watchCollection(ctx, w.client.Collection(colCards).Query, out, w.setCards)
	}()
	go func() {
		defer wg.Done()
		w.watchCollection(ctx, w.client.Collection(colPurchases).Query, out, w.setPurchases)
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

type applyFunc func(docs []*firestore.DocumentSnapshot) error

func (w *Watcher) watchCollection(ctx context.Context, q firestore.Query, out chan card.Snapshot, apply applyFunc) {
	snapIter := q.Snapshots(ctx)
	defer snapIter.Stop()

	for {
		qsnap, err := snapIter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Firestore snapshot listener error: %v", err)
			return
		}

		docs, err := qsnap.Documents.GetAll()
		if err != nil {
			log.Printf("Failed to read snapshot documents: %v", err)
			continue
		}
		if err := apply(docs); err != nil {
			log.Printf("Failed to apply snapshot: %v", err)
			continue
		}
		w.emit(out)
	}
}

func (w *Watcher) setCards(docs []*firestore.DocumentSnapshot) error {
	cards := make([]*card.Card, 0, len(docs))
	for _, doc := range docs {
		cards = append(cards, decodeCard(doc))
	}
	w.mu.Lock()
	w.cards = cards
	w.mu.Unlock()
	return nil
}

func (w *Watcher) setPurchases(docs []*firestore.DocumentSnapshot) error {
	purchases := make([]*card.Purchase, 0, len(docs))
	for _, doc := range docs {
		purchases = append(purchases, decodePurchase(doc))
	}
	sortPurchases(purchases)
	w.mu.Lock()
	w.purchases = purchases
	w.mu.Unlock()
	return nil
}

// emit replaces any undelivered snapshot with the current one.
func (w *Watcher) emit(out chan card.Snapshot) {
	w.mu.Lock()
	snap := card.Snapshot{
		Cards:     append([]*card.Card(nil), w.cards...),
		Purchases: append([]*card.Purchase(nil), w.purchases...),
	}
	w.mu.Unlock()

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
