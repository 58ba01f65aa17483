package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bolso/internal/domain/card"
)

// MockCardRepo implements card.Repository for testing
type MockCardRepo struct {
	CreateFunc  func(ctx context.Context, params card.CreateCardParams) (*card.Card, error)
	GetByIDFunc func(ctx context.Context, id string) (*card.Card, error)
	ListFunc    func(ctx context.Context) ([]*card.Card, error)
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *MockCardRepo) Create(ctx context.Context, params card.CreateCardParams) (*card.Card, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockCardRepo) GetByID(ctx context.Context, id string) (*card.Card, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, card.ErrCardNotFound
}

func (m *MockCardRepo) List(ctx context.Context) ([]*card.Card, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCardRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPurchaseRepo implements card.PurchaseRepository for testing
type MockPurchaseRepo struct {
	CreateFunc                func(ctx context.Context, params card.CreatePurchaseParams) (*card.Purchase, error)
	GetByIDFunc               func(ctx context.Context, id string) (*card.Purchase, error)
	ListFunc                  func(ctx context.Context) ([]*card.Purchase, error)
	ListByCardFunc            func(ctx context.Context, cardID string) ([]*card.Purchase, error)
	DeleteFunc                func(ctx context.Context, id string) error
	DeleteByCardFunc          func(ctx context.Context, cardID string) error
	AddPaidInstallmentFunc    func(ctx context.Context, id string, index int) error
	RemovePaidInstallmentFunc func(ctx context.Context, id string, index int) error
}

func (m *MockPurchaseRepo) Create(ctx context.Context, params card.CreatePurchaseParams) (*card.Purchase, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockPurchaseRepo) GetByID(ctx context.Context, id string) (*card.Purchase, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, card.ErrPurchaseNotFound
}

func (m *MockPurchaseRepo) List(ctx context.Context) ([]*card.Purchase, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockPurchaseRepo) ListByCard(ctx context.Context, cardID string) ([]*card.Purchase, error) {
	if m.ListByCardFunc != nil {
		return m.ListByCardFunc(ctx, cardID)
	}
	return nil, nil
}

func (m *MockPurchaseRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPurchaseRepo) DeleteByCard(ctx context.Context, cardID string) error {
	if m.DeleteByCardFunc != nil {
		return m.DeleteByCardFunc(ctx, cardID)
	}
	return nil
}

func (m *MockPurchaseRepo) AddPaidInstallment(ctx context.Context, id string, index int) error {
	if m.AddPaidInstallmentFunc != nil {
		return m.AddPaidInstallmentFunc(ctx, id, index)
	}
	return nil
}

func (m *MockPurchaseRepo) RemovePaidInstallment(ctx context.Context, id string, index int) error {
	if m.RemovePaidInstallmentFunc != nil {
		return m.RemovePaidInstallmentFunc(ctx, id, index)
	}
	return nil
}

func newCardHandler(cards *MockCardRepo, purchases *MockPurchaseRepo) *CardHandler {
	return NewCardHandler(card.NewService(cards, purchases))
}

func TestHandleCards_List(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       func() *MockCardRepo
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "Success",
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					ListFunc: func(ctx context.Context) ([]*card.Card, error) {
						return []*card.Card{
							{ID: "c1", Name: "Nubank", Limit: 1000, PaymentDay: 10},
							{ID: "c2", Name: "Inter", Limit: 2500, PaymentDay: 5},
						}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name: "Empty List",
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					ListFunc: func(ctx context.Context) ([]*card.Card, error) {
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "Repository Error",
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					ListFunc: func(ctx context.Context) ([]*card.Card, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newCardHandler(tt.mockRepo(), &MockPurchaseRepo{})

			req, _ := http.NewRequest(http.MethodGet, "/api/cards/", nil)
			rr := httptest.NewRecorder()
			handler.HandleCards(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				var cards []CardResponse
				json.NewDecoder(rr.Body).Decode(&cards)
				if len(cards) != tt.expectedLen {
					t.Errorf("response length = %d, want %d", len(cards), tt.expectedLen)
				}
			}
		})
	}
}

func TestHandleCards_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		mockRepo       func() *MockCardRepo
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]interface{}{
				"name":       "Nubank",
				"limit":      1000,
				"paymentDay": 10,
			},
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					CreateFunc: func(ctx context.Context, params card.CreateCardParams) (*card.Card, error) {
						return &card.Card{ID: "c1", Name: params.Name, Limit: params.Limit, PaymentDay: params.PaymentDay}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Name",
			body: map[string]interface{}{
				"limit": 1000,
			},
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid JSON",
			body: nil,
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Repository Error",
			body: map[string]interface{}{
				"name": "Nubank",
			},
			mockRepo: func() *MockCardRepo {
				return &MockCardRepo{
					CreateFunc: func(ctx context.Context, params card.CreateCardParams) (*card.Card, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newCardHandler(tt.mockRepo(), &MockPurchaseRepo{})

			var body *bytes.Buffer
			if tt.body != nil {
				bodyBytes, _ := json.Marshal(tt.body)
				body = bytes.NewBuffer(bodyBytes)
			} else {
				body = bytes.NewBuffer([]byte("invalid json{"))
			}

			req, _ := http.NewRequest(http.MethodPost, "/api/cards/", body)
			rr := httptest.NewRecorder()
			handler.HandleCards(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleCardByID_Delete(t *testing.T) {
	existing := &card.Card{ID: "c1", Name: "Nubank"}

	tests := []struct {
		name           string
		cardID         string
		cards          *MockCardRepo
		expectedStatus int
	}{
		{
			name:   "Success Cascades",
			cardID: "c1",
			cards: &MockCardRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*card.Card, error) {
					return existing, nil
				},
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "Card Not Found",
			cardID: "c999",
			cards: &MockCardRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*card.Card, error) {
					return nil, card.ErrCardNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var purgedCard string
			purchases := &MockPurchaseRepo{
				DeleteByCardFunc: func(ctx context.Context, cardID string) error {
					purgedCard = cardID
					return nil
				},
			}
			handler := newCardHandler(tt.cards, purchases)

			mux := http.NewServeMux()
			mux.HandleFunc("DELETE /api/cards/{id}", handler.HandleCardByID)

			req, _ := http.NewRequest(http.MethodDelete, "/api/cards/"+tt.cardID, nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusNoContent && purgedCard != tt.cardID {
				t.Errorf("purchases purged for card %q, want %q", purgedCard, tt.cardID)
			}
		})
	}
}

func TestHandleCardUtilization(t *testing.T) {
	cards := &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*card.Card, error) {
			return &card.Card{ID: "c1", Name: "Nubank", Limit: 1000}, nil
		},
	}
	purchases := &MockPurchaseRepo{
		ListByCardFunc: func(ctx context.Context, cardID string) ([]*card.Purchase, error) {
			return []*card.Purchase{
				{ID: "p1", CardID: "c1", Amount: 300, Installments: 3, PaidInstallments: []int{1}},
			}, nil
		},
	}
	handler := newCardHandler(cards, purchases)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cards/{id}/utilization", handler.HandleCardUtilization)

	req, _ := http.NewRequest(http.MethodGet, "/api/cards/c1/utilization", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp CardUtilizationResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Locked != 200 {
		t.Errorf("Locked = %v, want 200", resp.Locked)
	}
	if resp.Available != 800 {
		t.Errorf("Available = %v, want 800", resp.Available)
	}
	if resp.PercentUsed != 20 {
		t.Errorf("PercentUsed = %v, want 20", resp.PercentUsed)
	}
}

func TestHandleInstallmentPaid(t *testing.T) {
	tests := []struct {
		name           string
		purchaseID     string
		index          string
		paid           bool
		purchases      func() *MockPurchaseRepo
		expectedStatus int
		wantAdd        bool
		wantRemove     bool
	}{
		{
			name:       "Mark Paid",
			purchaseID: "p1",
			index:      "2",
			paid:       true,
			purchases: func() *MockPurchaseRepo {
				return &MockPurchaseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*card.Purchase, error) {
						return &card.Purchase{ID: id, Installments: 3}, nil
					},
				}
			},
			expectedStatus: http.StatusNoContent,
			wantAdd:        true,
		},
		{
			name:       "Mark Unpaid",
			purchaseID: "p1",
			index:      "2",
			paid:       false,
			purchases: func() *MockPurchaseRepo {
				return &MockPurchaseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*card.Purchase, error) {
						return &card.Purchase{ID: id, Installments: 3, PaidInstallments: []int{2}}, nil
					},
				}
			},
			expectedStatus: http.StatusNoContent,
			wantRemove:     true,
		},
		{
			name:       "Index Below One",
			purchaseID: "p1",
			index:      "0",
			paid:       true,
			purchases: func() *MockPurchaseRepo {
				return &MockPurchaseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*card.Purchase, error) {
						return &card.Purchase{ID: id, Installments: 3}, nil
					},
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "Purchase Not Found",
			purchaseID: "p999",
			index:      "1",
			paid:       true,
			purchases: func() *MockPurchaseRepo {
				return &MockPurchaseRepo{}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var added, removed bool
			purchases := tt.purchases()
			purchases.AddPaidInstallmentFunc = func(ctx context.Context, id string, index int) error {
				added = true
				return nil
			}
			purchases.RemovePaidInstallmentFunc = func(ctx context.Context, id string, index int) error {
				removed = true
				return nil
			}

			handler := NewPurchaseHandler(card.NewService(&MockCardRepo{}, purchases))

			mux := http.NewServeMux()
			mux.HandleFunc("PUT /api/purchases/{id}/installments/{index}/paid", handler.HandleInstallmentPaid)

			bodyBytes, _ := json.Marshal(map[string]bool{"paid": tt.paid})
			req, _ := http.NewRequest(http.MethodPut, "/api/purchases/"+tt.purchaseID+"/installments/"+tt.index+"/paid", bytes.NewBuffer(bodyBytes))
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if added != tt.wantAdd {
				t.Errorf("AddPaidInstallment called = %v, want %v", added, tt.wantAdd)
			}
			if removed != tt.wantRemove {
				t.Errorf("RemovePaidInstallment called = %v, want %v", removed, tt.wantRemove)
			}
		})
	}
}

func TestHandleInstallments_SchedulesWithCardPaymentDay(t *testing.T) {
	cards := &MockCardRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*card.Card, error) {
			return &card.Card{ID: "c1", PaymentDay: 31}, nil
		},
	}
	purchases := &MockPurchaseRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*card.Purchase, error) {
			return &card.Purchase{
				ID: id, CardID: "c1", Amount: 300, Installments: 3,
				PurchaseDate: "2024-01-15", PaidInstallments: []int{1},
			}, nil
		},
	}
	handler := NewPurchaseHandler(card.NewService(cards, purchases))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/purchases/{id}/installments", handler.HandleInstallments)

	req, _ := http.NewRequest(http.MethodGet, "/api/purchases/p1/installments", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp []InstallmentResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp) != 3 {
		t.Fatalf("installments = %d, want 3", len(resp))
	}
	// Payment day 31 clamps to February's length in 2024 (leap year).
	if resp[0].DueDate != "2024-02-29" {
		t.Errorf("first due date = %s, want 2024-02-29", resp[0].DueDate)
	}
	if resp[0].DueDateDisplay != "29/02/2024" {
		t.Errorf("first display date = %s, want 29/02/2024", resp[0].DueDateDisplay)
	}
	if !resp[0].Paid || resp[1].Paid {
		t.Errorf("paid flags = [%v %v %v], want [true false false]", resp[0].Paid, resp[1].Paid, resp[2].Paid)
	}
}
