package mocks

import (
	"context"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/segyhp/debt-ledger/internal/ledger"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) View(ctx context.Context, f ledger.Filter) (*domain.LedgerView, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerView), args.Error(1)
}

func (m *MockLedgerService) Originate(ctx context.Context, req domain.OriginateRequest) (*domain.Debtor, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debtor), args.Error(1)
}

func (m *MockLedgerService) Get(ctx context.Context, id string) (*domain.Debtor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Debtor), args.Error(1)
}

func (m *MockLedgerService) Update(ctx context.Context, id string, patch domain.DebtorPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockLedgerService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerService) MarkPaid(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLedgerService) Metrics(ctx context.Context) (*domain.Metrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Metrics), args.Error(1)
}

func (m *MockLedgerService) Quote(req domain.QuoteRequest) (*domain.Quote, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportXLSX(ctx context.Context, f ledger.Filter) ([]byte, string, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
