package mocks

import (
	"context"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]domain.Debtor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debtor), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, debtor *domain.Debtor) error {
	args := m.Called(ctx, debtor)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, id string, patch domain.DebtorPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
