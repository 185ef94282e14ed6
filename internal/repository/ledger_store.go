package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/segyhp/debt-ledger/internal/domain"
)

// LedgerStore keeps the full ledger as a JSON array inside a BlobBackend.
// Every mutation is a read-modify-write of the whole array; the mutex only
// serializes writers of this process, other processes sharing the blob race
// and the last write wins.
type LedgerStore struct {
	mu      sync.Mutex
	backend BlobBackend
}

func NewLedgerStore(backend BlobBackend) *LedgerStore {
	return &LedgerStore{backend: backend}
}

func (s *LedgerStore) List(ctx context.Context) ([]domain.Debtor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *LedgerStore) Create(ctx context.Context, debtor *domain.Debtor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtors, err := s.load(ctx)
	if err != nil {
		return err
	}

	return s.save(ctx, append(debtors, *debtor))
}

func (s *LedgerStore) Update(ctx context.Context, id string, patch domain.DebtorPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtors, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range debtors {
		if debtors[i].ID == id {
			debtors[i] = patch.Apply(debtors[i])
			return s.save(ctx, debtors)
		}
	}

	return nil
}

func (s *LedgerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	debtors, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := debtors[:0]
	for _, d := range debtors {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(debtors) {
		return nil
	}

	return s.save(ctx, kept)
}

// Ping checks the backend when it supports it
func (s *LedgerStore) Ping(ctx context.Context) error {
	if p, ok := s.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *LedgerStore) load(ctx context.Context) ([]domain.Debtor, error) {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	debtors := make([]domain.Debtor, 0)
	if len(data) == 0 {
		return debtors, nil
	}
	if err := json.Unmarshal(data, &debtors); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}

	return debtors, nil
}

func (s *LedgerStore) save(ctx context.Context, debtors []domain.Debtor) error {
	data, err := json.Marshal(debtors)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
