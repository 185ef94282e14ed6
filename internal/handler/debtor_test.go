package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/segyhp/debt-ledger/internal/ledger"
	"github.com/segyhp/debt-ledger/internal/mocks"
	"github.com/segyhp/debt-ledger/internal/repository"
	customError "github.com/segyhp/debt-ledger/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *mocks.MockLedgerService, exp *mocks.MockExporter) *mux.Router {
	health := NewHealthHandler(repository.NewLedgerStore(repository.NewMemoryBlob()), time.Second)
	return NewRouter(NewDebtorHandler(svc, exp), health, RouterOptions{})
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleDebtor() *domain.Debtor {
	return &domain.Debtor{
		ID: "d-1",
		DebtorFields: domain.DebtorFields{
			Name:         "João Silva",
			Principal:    decimal.NewFromInt(5000),
			InterestRate: decimal.NewFromInt(3),
			InterestType: domain.InterestSimple,
			PeriodMonths: 6,
			Interest:     decimal.NewFromInt(900),
			Total:        decimal.NewFromInt(5900),
			DueDate:      domain.NewDate(2026, time.March, 15),
			Status:       domain.StatusPending,
		},
	}
}

func TestDebtorHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.MockLedgerService)
		expectedStatus int
		expectedBody   string
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "originates a debtor",
			requestBody: map[string]interface{}{
				"name":          "João Silva",
				"principal":     "5000",
				"interest_rate": "3",
				"period_months": 6,
				"interest_type": "simple",
			},
			setupMock: func(svc *mocks.MockLedgerService) {
				svc.On("Originate", mock.Anything, mock.MatchedBy(func(req domain.OriginateRequest) bool {
					return req.Name == "João Silva" &&
						req.Principal.Equal(decimal.NewFromInt(5000)) &&
						req.PeriodMonths == 6 &&
						req.DueDate == nil
				})).Return(sampleDebtor(), nil).Once()
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var wrapperResponse struct {
					Success bool             `json:"success"`
					Data    domain.DebtorRow `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapperResponse))
				assert.True(t, wrapperResponse.Success)
				assert.Equal(t, "d-1", wrapperResponse.Data.ID)
				assert.Equal(t, "Pendente", wrapperResponse.Data.StatusLabel)
				assert.Equal(t, "15/03/2026", wrapperResponse.Data.Display.DueDate)
				assert.True(t, wrapperResponse.Data.Total.Equal(decimal.NewFromInt(5900)))
			},
		},
		{
			name:           "invalid JSON payload",
			requestBody:    "invalid json",
			setupMock:      func(*mocks.MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid JSON payload",
		},
		{
			name: "validation error - missing name",
			requestBody: map[string]interface{}{
				"principal":     "5000",
				"interest_rate": "3",
				"period_months": 6,
				"interest_type": "simple",
			},
			setupMock:      func(*mocks.MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "name is required",
		},
		{
			name: "validation error - zero principal",
			requestBody: map[string]interface{}{
				"name":          "Ana",
				"principal":     "0",
				"interest_rate": "3",
				"period_months": 6,
				"interest_type": "simple",
			},
			setupMock:      func(*mocks.MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "principal must be greater than 0",
		},
		{
			name: "validation error - unknown interest type",
			requestBody: map[string]interface{}{
				"name":          "Ana",
				"principal":     "100",
				"interest_rate": "3",
				"period_months": 6,
				"interest_type": "daily",
			},
			setupMock:      func(*mocks.MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Validation failed",
		},
		{
			name: "validation error - negative collateral value",
			requestBody: map[string]interface{}{
				"name":                   "Ana",
				"principal":              "100",
				"interest_rate":          "3",
				"period_months":          6,
				"interest_type":          "simple",
				"collateral_description": "Moto",
				"collateral_value":       "-1",
			},
			setupMock:      func(*mocks.MockLedgerService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "collateral_value must be greater than or equal to 0",
		},
		{
			name: "storage failure",
			requestBody: map[string]interface{}{
				"name":          "Ana",
				"principal":     "100",
				"interest_rate": "3",
				"period_months": 6,
				"interest_type": "compound",
			},
			setupMock: func(svc *mocks.MockLedgerService) {
				svc.On("Originate", mock.Anything, mock.Anything).
					Return(nil, customError.WrapStorageError(errors.New("redis down"))).Once()
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "storage operation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mocks.MockLedgerService{}
			tt.setupMock(svc)

			w := doRequest(t, newTestRouter(svc, &mocks.MockExporter{}), http.MethodPost, "/api/v1/debtors", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			assert.NotContains(t, w.Body.String(), "redis down")
			svc.AssertExpectations(t)
		})
	}
}

func TestDebtorHandler_List(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	due := domain.NewDate(2026, time.January, 10)
	svc.On("View", mock.Anything, ledger.Filter{Name: "maria", Status: "atrasado", DueDate: &due}).
		Return(&domain.LedgerView{Debtors: []domain.DebtorRow{}, Count: 0}, nil).Once()

	w := doRequest(t, newTestRouter(svc, &mocks.MockExporter{}), http.MethodGet,
		"/api/v1/debtors?name=maria&status=atrasado&due_date=2026-01-10", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDebtorHandler_ListInvalidFilter(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	router := newTestRouter(svc, &mocks.MockExporter{})

	w := doRequest(t, router, http.MethodGet, "/api/v1/debtors?status=quitado", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/debtors?due_date=10/01/2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")

	svc.AssertNotCalled(t, "View", mock.Anything, mock.Anything)
}

func TestDebtorHandler_Get(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	svc.On("Get", mock.Anything, "d-1").Return(sampleDebtor(), nil).Once()
	svc.On("Get", mock.Anything, "nope").Return(nil, customError.WrapDebtorNotFound("nope")).Once()
	router := newTestRouter(svc, &mocks.MockExporter{})

	w := doRequest(t, router, http.MethodGet, "/api/v1/debtors/d-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"João Silva"`)

	w = doRequest(t, router, http.MethodGet, "/api/v1/debtors/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Debtor with ID nope not found")

	svc.AssertExpectations(t)
}

func TestDebtorHandler_Update(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	svc.On("Update", mock.Anything, "d-1", mock.MatchedBy(func(p domain.DebtorPatch) bool {
		return p.Status != nil && *p.Status == domain.StatusOverdue &&
			p.Principal != nil && p.Principal.Equal(decimal.NewFromInt(7000)) &&
			p.Name == nil && p.Interest == nil && p.Total == nil
	})).Return(nil).Once()
	router := newTestRouter(svc, &mocks.MockExporter{})

	w := doRequest(t, router, http.MethodPatch, "/api/v1/debtors/d-1", map[string]interface{}{
		"status":    "atrasado",
		"principal": "7000",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"updated"`)

	w = doRequest(t, router, http.MethodPatch, "/api/v1/debtors/d-1", map[string]interface{}{"status": "quitado"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestDebtorHandler_DeleteAndPay(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	svc.On("Delete", mock.Anything, "d-1").Return(nil).Once()
	svc.On("MarkPaid", mock.Anything, "d-2").Return(nil).Once()
	router := newTestRouter(svc, &mocks.MockExporter{})

	w := doRequest(t, router, http.MethodDelete, "/api/v1/debtors/d-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"deleted"`)

	w = doRequest(t, router, http.MethodPost, "/api/v1/debtors/d-2/pay", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"paid"`)

	svc.AssertExpectations(t)
}

func TestDebtorHandler_Quote(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	svc.On("Quote", mock.MatchedBy(func(req domain.QuoteRequest) bool {
		return req.InterestType == domain.InterestCompound && req.PeriodMonths == 12
	})).Return(&domain.Quote{
		Principal:    decimal.NewFromInt(12000),
		InterestRate: decimal.RequireFromString("2.5"),
		PeriodMonths: 12,
		InterestType: domain.InterestCompound,
		Interest:     decimal.RequireFromString("4138.67"),
		Total:        decimal.RequireFromString("16138.67"),
		Installment:  decimal.RequireFromString("1344.89"),
	}, nil).Once()

	w := doRequest(t, newTestRouter(svc, &mocks.MockExporter{}), http.MethodPost, "/api/v1/quotes", map[string]interface{}{
		"principal":     "12000",
		"interest_rate": "2.5",
		"period_months": 12,
		"interest_type": "compound",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":"16138.67"`)
	svc.AssertExpectations(t)
}

func TestDebtorHandler_Metrics(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	svc.On("Metrics", mock.Anything).Return(&domain.Metrics{
		InvestedCapital: decimal.NewFromInt(43000),
		Pending:         domain.StatusTotal{Subtotal: decimal.RequireFromString("15265.69"), Count: 2},
	}, nil).Once()

	w := doRequest(t, newTestRouter(svc, &mocks.MockExporter{}), http.MethodGet, "/api/v1/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invested_capital":"43000"`)
	svc.AssertExpectations(t)
}

func TestDebtorHandler_Export(t *testing.T) {
	svc := &mocks.MockLedgerService{}
	exp := &mocks.MockExporter{}
	exp.On("ExportXLSX", mock.Anything, ledger.Filter{Status: "pago"}).
		Return([]byte("xlsx-bytes"), "devedores_20250301_080500.xlsx", nil).Once()

	w := doRequest(t, newTestRouter(svc, exp), http.MethodGet, "/api/v1/debtors/export.xlsx?status=pago", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="devedores_20250301_080500.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", w.Body.String())
	exp.AssertExpectations(t)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
