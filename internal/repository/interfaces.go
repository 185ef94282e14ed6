package repository

import (
	"context"

	"github.com/segyhp/debt-ledger/internal/domain"
)

// Store defines the persistence operations of the debtor ledger.
// Update and Delete on an unknown id are no-ops.
type Store interface {
	// List returns every debtor in the ledger
	List(ctx context.Context) ([]domain.Debtor, error)

	// Create persists a debtor whose ID is already assigned
	Create(ctx context.Context, debtor *domain.Debtor) error

	// Update merges the supplied fields into the debtor with the given id
	Update(ctx context.Context, id string, patch domain.DebtorPatch) error

	// Delete removes the debtor with the given id
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can check their backend connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// BlobBackend holds the whole ledger as one serialized value
type BlobBackend interface {
	// Load returns the stored bytes, or nil when nothing was saved yet
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored bytes
	Save(ctx context.Context, data []byte) error
}
