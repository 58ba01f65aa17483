package card

import (
	"regexp"
	"testing"
)

func TestCreateCardParams_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		params CreateCardParams
		want   CreateCardParams
	}{
		{
			"defaults applied",
			CreateCardParams{Name: " Nubank "},
			CreateCardParams{Name: "Nubank", Color: DefaultColor, GoodPurchaseDay: 1, PaymentDay: 10},
		},
		{
			"days clamped",
			CreateCardParams{Name: "X", Color: "#fff", GoodPurchaseDay: 45, PaymentDay: -2},
			CreateCardParams{Name: "X", Color: "#fff", GoodPurchaseDay: 31, PaymentDay: 1},
		},
		{
			"negative limit floored",
			CreateCardParams{Name: "X", Color: "#fff", Limit: -100, GoodPurchaseDay: 5, PaymentDay: 12},
			CreateCardParams{Name: "X", Color: "#fff", Limit: 0, GoodPurchaseDay: 5, PaymentDay: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()
			if tt.params != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", tt.params, tt.want)
			}
		})
	}
}

func TestCreateCardParams_Validate(t *testing.T) {
	if err := (CreateCardParams{Name: "Nubank"}).Validate(); err != nil {
		t.Errorf("valid params returned error: %v", err)
	}
	if err := (CreateCardParams{Name: "   "}).Validate(); err == nil {
		t.Error("blank name accepted")
	}
}

func TestCreatePurchaseParams_Normalize(t *testing.T) {
	p := CreatePurchaseParams{
		CardID:       "c1",
		Description:  " TV ",
		Amount:       -50,
		Installments: 120,
		PurchaseDate: "2024-03-15",
	}
	p.Normalize()

	if p.Description != "TV" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Amount != 0 {
		t.Errorf("Amount = %v, want 0", p.Amount)
	}
	if p.Installments != MaxInstallments {
		t.Errorf("Installments = %d, want %d", p.Installments, MaxInstallments)
	}
	if p.PurchaseDate != "2024-03-15" {
		t.Errorf("valid date rewritten to %q", p.PurchaseDate)
	}
}

func TestCreatePurchaseParams_Normalize_DateFallback(t *testing.T) {
	isoDate := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	for _, bad := range []string{"", "15/03/2024", "yesterday"} {
		p := CreatePurchaseParams{CardID: "c1", Description: "X", Installments: 1, PurchaseDate: bad}
		p.Normalize()
		if !isoDate.MatchString(p.PurchaseDate) {
			t.Errorf("date %q normalized to %q, want YYYY-MM-DD", bad, p.PurchaseDate)
		}
	}
}

func TestCreatePurchaseParams_Normalize_InstallmentsFloor(t *testing.T) {
	p := CreatePurchaseParams{CardID: "c1", Description: "X", Installments: 0, PurchaseDate: "2024-01-01"}
	p.Normalize()
	if p.Installments != 1 {
		t.Errorf("Installments = %d, want 1", p.Installments)
	}
}

func TestCreatePurchaseParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreatePurchaseParams
		wantErr bool
	}{
		{"valid", CreatePurchaseParams{CardID: "c1", Description: "TV"}, false},
		{"missing card", CreatePurchaseParams{Description: "TV"}, true},
		{"blank description", CreatePurchaseParams{CardID: "c1", Description: "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
