package card

import "context"

// Repository defines the persistence operations for cards
type Repository interface {
	Create(ctx context.Context, params CreateCardParams) (*Card, error)
	GetByID(ctx context.Context, id string) (*Card, error)
	List(ctx context.Context) ([]*Card, error)
	Delete(ctx context.Context, id string) error
}

// PurchaseRepository defines the persistence operations for purchases.
// AddPaidInstallment and RemovePaidInstallment patch a single index in the
// paid set; the stored set is never rewritten wholesale.
type PurchaseRepository interface {
	Create(ctx context.Context, params CreatePurchaseParams) (*Purchase, error)
	GetByID(ctx context.Context, id string) (*Purchase, error)
	List(ctx context.Context) ([]*Purchase, error)
	ListByCard(ctx context.Context, cardID string) ([]*Purchase, error)
	Delete(ctx context.Context, id string) error
	DeleteByCard(ctx context.Context, cardID string) error
	AddPaidInstallment(ctx context.Context, id string, index int) error
	RemovePaidInstallment(ctx context.Context, id string, index int) error
}

// Snapshot is a full in-memory view of the card and purchase sets.
// The two sets arrive via independent change streams, so a snapshot may
// transiently contain purchases whose card is not present; consumers skip
// those rather than erroring.
type Snapshot struct {
	Cards     []*Card
	Purchases []*Purchase
}

// Watcher delivers a fresh Snapshot on every change to the underlying store.
// Derived values are recomputed from scratch per snapshot; there is no
// incremental aggregation state to invalidate.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Snapshot, error)
}
