package card

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Domain errors
var (
	ErrCardNotFound     = errors.New("card not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrInvalidInput     = errors.New("invalid input")
)

const (
	DefaultColor           = "#3b82f6"
	DefaultGoodPurchaseDay = 1
	DefaultPaymentDay      = 10

	// MaxInstallments bounds new purchases; existing records are read as-is.
	MaxInstallments = 60
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Card represents a credit card with its billing parameters.
// GoodPurchaseDay is informational: it is stored and surfaced but does not
// shift due-date computation (see billing.DueDate).
type Card struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Color           string    `json:"color"`
	Limit           float64   `json:"limit"`
	GoodPurchaseDay int       `json:"goodPurchaseDay"`
	PaymentDay      int       `json:"paymentDay"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Purchase represents an installment purchase on a card.
// PurchaseDate is a calendar date in YYYY-MM-DD form, no time component.
// PaidInstallments holds 1-based installment indices; values outside
// [1, Installments] may exist in storage and are filtered on aggregation.
type Purchase struct {
	ID               string    `json:"id"`
	CardID           string    `json:"cardId"`
	Description      string    `json:"description"`
	Amount           float64   `json:"amount"`
	Installments     int       `json:"installments"`
	PurchaseDate     string    `json:"purchaseDate"`
	PaidInstallments []int     `json:"paidInstallments"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateCardParams contains parameters for creating a new card
type CreateCardParams struct {
	Name            string
	Color           string
	Limit           float64
	GoodPurchaseDay int
	PaymentDay      int
}

// Normalize applies defaults and clamps day/limit values into valid ranges.
func (p *CreateCardParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	if p.Color == "" {
		p.Color = DefaultColor
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.GoodPurchaseDay == 0 {
		p.GoodPurchaseDay = DefaultGoodPurchaseDay
	}
	if p.PaymentDay == 0 {
		p.PaymentDay = DefaultPaymentDay
	}
	p.GoodPurchaseDay = clampDay(p.GoodPurchaseDay)
	p.PaymentDay = clampDay(p.PaymentDay)
}

// Validate validates the create parameters
func (p CreateCardParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("card name is required")
	}
	return nil
}

// CreatePurchaseParams contains parameters for creating a new purchase
type CreatePurchaseParams struct {
	CardID       string
	Description  string
	Amount       float64
	Installments int
	PurchaseDate string
}

// Normalize clamps amount and installment count and substitutes today for a
// missing or malformed purchase date, so stored records stay well-formed.
func (p *CreatePurchaseParams) Normalize() {
	p.Description = strings.TrimSpace(p.Description)
	if p.Amount < 0 {
		p.Amount = 0
	}
	if p.Installments < 1 {
		p.Installments = 1
	}
	if p.Installments > MaxInstallments {
		p.Installments = MaxInstallments
	}
	if !isoDatePattern.MatchString(p.PurchaseDate) {
		p.PurchaseDate = time.Now().Format("2006-01-02")
	}
}

// Validate validates the create parameters
func (p CreatePurchaseParams) Validate() error {
	if p.CardID == "" {
		return errors.New("card ID is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("purchase description is required")
	}
	return nil
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}
