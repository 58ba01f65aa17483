package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bolso/internal/domain/card"
)

type CardRepository struct {
	db *DB
}

func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, params card.CreateCardParams) (*card.Card, error) {
	query := `
		INSERT INTO cards (id, name, color, credit_limit, good_purchase_day, payment_day)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, color, credit_limit, good_purchase_day, payment_day, created_at
	`

	var c card.Card
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.Name, params.Color, params.Limit,
		params.GoodPurchaseDay, params.PaymentDay,
	).Scan(
		&c.ID, &c.Name, &c.Color, &c.Limit,
		&c.GoodPurchaseDay, &c.PaymentDay, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return &c, nil
}

func (r *CardRepository) GetByID(ctx context.Context, id string) (*card.Card, error) {
	query := `
		SELECT id, name, color, credit_limit, good_purchase_day, payment_day, created_at
		FROM cards
		WHERE id = $1
	`

	var c card.Card
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Color, &c.Limit,
		&c.GoodPurchaseDay, &c.PaymentDay, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, card.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return &c, nil
}

func (r *CardRepository) List(ctx context.Context) ([]*card.Card, error) {
	query := `
		SELECT id, name, color, credit_limit, good_purchase_day, payment_day, created_at
		FROM cards
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.Card
	for rows.Next() {
		var c card.Card
		err := rows.Scan(
			&c.ID, &c.Name, &c.Color, &c.Limit,
			&c.GoodPurchaseDay, &c.PaymentDay, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}

func (r *CardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return card.ErrCardNotFound
	}

	return nil
}

type PurchaseRepository struct {
	db *DB
}

func NewPurchaseRepository(db *DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, params card.CreatePurchaseParams) (*card.Purchase, error) {
	query := `
		INSERT INTO card_purchases (id, card_id, description, amount, installments, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, card_id, description, amount, installments, purchase_date, paid_installments, created_at
	`

	return r.scanRow(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.CardID, params.Description,
		params.Amount, params.Installments, params.PurchaseDate,
	), "create")
}

func (r *PurchaseRepository) GetByID(ctx context.Context, id string) (*card.Purchase, error) {
	query := `
		SELECT id, card_id, description, amount, installments, purchase_date, paid_installments, created_at
		FROM card_purchases
		WHERE id = $1
	`

	p, err := r.scanRow(r.db.QueryRowContext(ctx, query, id), "get")
	if err == errPurchaseNoRows {
		return nil, card.ErrPurchaseNotFound
	}
	return p, err
}

func (r *PurchaseRepository) List(ctx context.Context) ([]*card.Purchase, error) {
	query := `
		SELECT id, card_id, description, amount, installments, purchase_date, paid_installments, created_at
		FROM card_purchases
		ORDER BY purchase_date ASC, created_at ASC
	`
	return r.queryList(ctx, query)
}

func (r *PurchaseRepository) ListByCard(ctx context.Context, cardID string) ([]*card.Purchase, error) {
	query := `
		SELECT id, card_id, description, amount, installments, purchase_date, paid_installments, created_at
		FROM card_purchases
		WHERE card_id = $1
		ORDER BY purchase_date ASC, created_at ASC
	`
	return r.queryList(ctx, query, cardID)
}

func (r *PurchaseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM card_purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return card.ErrPurchaseNotFound
	}

	return nil
}

func (r *PurchaseRepository) DeleteByCard(ctx context.Context, cardID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM card_purchases WHERE card_id = $1`, cardID); err != nil {
		return fmt.Errorf("failed to delete purchases for card %s: %w", cardID, err)
	}
	return nil
}

// AddPaidInstallment appends the index unless it is already present, so the
// stored set stays duplicate-free without a read-modify-write cycle.
func (r *PurchaseRepository) AddPaidInstallment(ctx context.Context, id string, index int) error {
	query := `
		UPDATE card_purchases
		SET paid_installments = array_append(paid_installments, $2)
		WHERE id = $1 AND NOT ($2 = ANY(paid_installments))
	`

	if _, err := r.db.ExecContext(ctx, query, id, index); err != nil {
		return fmt.Errorf("failed to mark installment paid: %w", err)
	}
	return r.ensureExists(ctx, id)
}

func (r *PurchaseRepository) RemovePaidInstallment(ctx context.Context, id string, index int) error {
	query := `
		UPDATE card_purchases
		SET paid_installments = array_remove(paid_installments, $2)
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, index)
	if err != nil {
		return fmt.Errorf("failed to mark installment unpaid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return card.ErrPurchaseNotFound
	}
	return nil
}

// ensureExists distinguishes "row missing" from "index already paid" after a
// conditional update that matched zero rows.
func (r *PurchaseRepository) ensureExists(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM card_purchases WHERE id = $1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return card.ErrPurchaseNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check purchase: %w", err)
	}
	return nil
}

func (r *PurchaseRepository) queryList(ctx context.Context, query string, args ...any) ([]*card.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*card.Purchase
	for rows.Next() {
		var p card.Purchase
		var paid []int64
		var created time.Time

		err := rows.Scan(
			&p.ID, &p.CardID, &p.Description, &p.Amount,
			&p.Installments, &p.PurchaseDate, pq.Array(&paid), &created,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}

		p.PaidInstallments = toIntSlice(paid)
		p.CreatedAt = created
		purchases = append(purchases, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}

var errPurchaseNoRows = sql.ErrNoRows

func (r *PurchaseRepository) scanRow(row *tracedRow, op string) (*card.Purchase, error) {
	var p card.Purchase
	var paid []int64

	err := row.Scan(
		&p.ID, &p.CardID, &p.Description, &p.Amount,
		&p.Installments, &p.PurchaseDate, pq.Array(&paid), &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errPurchaseNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s purchase: %w", op, err)
	}

	p.PaidInstallments = toIntSlice(paid)
	return &p, nil
}

func toIntSlice(in []int64) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
